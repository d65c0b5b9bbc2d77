package client

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"afiliado/api"
	"afiliado/config"
)

func testClient(baseURL string) *Client {
	return New(&config.Config{
		APIURL:      baseURL,
		HTTPTimeout: 5 * time.Second,
		PageSize:    10,
	})
}

func TestFetchFeedPage(t *testing.T) {
	testCases := []struct {
		name      string
		status    int
		body      string
		wantPosts int
		wantErr   any
	}{
		{
			name:      "well formed page",
			status:    http.StatusOK,
			body:      `{"posts": [{"id_contenido": 1, "autor": "a"}, {"id_contenido": 2, "autor": "b"}], "total": 25}`,
			wantPosts: 2,
		},
		{
			name:    "missing posts array",
			status:  http.StatusOK,
			body:    `{"message": "sin contenido"}`,
			wantErr: &ParseError{},
		},
		{
			name:    "posts not an array",
			status:  http.StatusOK,
			body:    `{"posts": "ninguno"}`,
			wantErr: &ParseError{},
		},
		{
			name:    "server error with message",
			status:  http.StatusInternalServerError,
			body:    `{"message": "algo falló"}`,
			wantErr: &ServerRejected{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/post/3" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				if got := r.URL.Query().Get("page"); got != "2" {
					t.Errorf("page query = %s, want 2", got)
				}
				if got := r.URL.Query().Get("limit"); got != "10" {
					t.Errorf("limit query = %s, want 10", got)
				}
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			payload, err := testClient(srv.URL).FetchFeedPage(3, 2, 10)

			switch want := tc.wantErr.(type) {
			case nil:
				if err != nil {
					t.Fatalf("FetchFeedPage: %v", err)
				}
				if len(payload.Posts) != tc.wantPosts {
					t.Errorf("got %d posts, want %d", len(payload.Posts), tc.wantPosts)
				}
			case *ParseError:
				var parseErr *ParseError
				if !errors.As(err, &parseErr) {
					t.Fatalf("want ParseError, got %v", err)
				}
			case *ServerRejected:
				var rejected *ServerRejected
				if !errors.As(err, &rejected) {
					t.Fatalf("want ServerRejected, got %v", err)
				}
				if rejected.Message != "algo falló" {
					t.Errorf("server message = %q", rejected.Message)
				}
			default:
				t.Fatalf("bad test case: %v", want)
			}
		})
	}
}

func TestFetchFeedPageNetworkError(t *testing.T) {
	// Nothing listens here.
	c := testClient("http://127.0.0.1:1")
	_, err := c.FetchFeedPage(3, 1, 10)
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("want NetworkError, got %v", err)
	}
}

func TestCreateReportWithoutPhoto(t *testing.T) {
	var gotForm map[string]string
	var hadImage bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("not a multipart request: %v", err)
		}
		gotForm = map[string]string{}
		for name, values := range r.MultipartForm.Value {
			gotForm[name] = values[0]
		}
		_, _, err := r.FormFile(api.FieldImage)
		hadImage = err == nil
		w.Write([]byte(`{"message": "Reporte creado exitosamente."}`))
	}))
	defer srv.Close()

	result, err := testClient(srv.URL).CreateReport(ReportSubmission{
		UserID:       7,
		Title:        "Pothole",
		Description:  "Large pothole",
		DepartmentID: "3",
		ReportDate:   "2026-09-01",
		Latitude:     19.4,
		Longitude:    -99.1,
	})
	if err != nil {
		t.Fatalf("CreateReport: %v", err)
	}
	if result.Message != "Reporte creado exitosamente." {
		t.Errorf("message = %q", result.Message)
	}

	want := map[string]string{
		api.FieldUserID:       "7",
		api.FieldTitle:        "Pothole",
		api.FieldDescription:  "Large pothole",
		api.FieldDepartmentID: "3",
		api.FieldReportDate:   "2026-09-01",
		api.FieldLatitude:     "19.4",
		api.FieldLongitude:    "-99.1",
	}
	for name, value := range want {
		if gotForm[name] != value {
			t.Errorf("field %s = %q, want %q", name, gotForm[name], value)
		}
	}
	if len(gotForm) != len(want) {
		t.Errorf("got %d text fields, want %d: %v", len(gotForm), len(want), gotForm)
	}
	if hadImage {
		t.Error("imagen part present without a photo")
	}
}

func TestCreateReportWithPhoto(t *testing.T) {
	photoPath := filepath.Join(t.TempDir(), "evidencia.PNG")
	if err := os.WriteFile(photoPath, []byte{0x89, 'P', 'N', 'G'}, 0o644); err != nil {
		t.Fatal(err)
	}

	var fileName, contentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("not a multipart request: %v", err)
		}
		_, header, err := r.FormFile(api.FieldImage)
		if err != nil {
			t.Fatalf("imagen part missing: %v", err)
		}
		fileName = header.Filename
		contentType = header.Header.Get("Content-Type")
		w.Write([]byte(`{"message": "ok"}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).CreateReport(ReportSubmission{
		UserID:       7,
		Title:        "Pothole",
		Description:  "Large pothole",
		DepartmentID: "3",
		ReportDate:   "2026-09-01",
		Latitude:     19.4,
		Longitude:    -99.1,
		PhotoPath:    photoPath,
	})
	if err != nil {
		t.Fatalf("CreateReport: %v", err)
	}
	if fileName != "evidencia.PNG" {
		t.Errorf("filename = %q", fileName)
	}
	if contentType != "image/png" {
		t.Errorf("content type = %q, want image/png", contentType)
	}
}

func TestCreateReportPhotoWithoutExtension(t *testing.T) {
	photoPath := filepath.Join(t.TempDir(), "captura")
	if err := os.WriteFile(photoPath, []byte{0xFF, 0xD8}, 0o644); err != nil {
		t.Fatal(err)
	}

	var contentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("not a multipart request: %v", err)
		}
		_, header, err := r.FormFile(api.FieldImage)
		if err != nil {
			t.Fatalf("imagen part missing: %v", err)
		}
		contentType = header.Header.Get("Content-Type")
		w.Write([]byte(`{"message": "ok"}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).CreateReport(ReportSubmission{
		UserID:       7,
		Title:        "t",
		Description:  "d",
		DepartmentID: "1",
		ReportDate:   "2026-09-01",
		PhotoPath:    photoPath,
	})
	if err != nil {
		t.Fatalf("CreateReport: %v", err)
	}
	if contentType != "image/jpg" {
		t.Errorf("content type = %q, want image/jpg", contentType)
	}
}

func TestCreateReportUndecodableSuccessBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>ok</html>"))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).CreateReport(ReportSubmission{
		UserID: 7, Title: "t", Description: "d", DepartmentID: "1",
		ReportDate: "2026-09-01",
	})
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("want ParseError for undecodable 2xx body, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != api.LoginEndpoint {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"token": "abc.def.ghi"}`))
	}))
	defer srv.Close()

	token, err := testClient(srv.URL).Login("5512345678", "devpassword")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token != "abc.def.ghi" {
		t.Errorf("token = %q", token)
	}
}

func TestFetchDepartments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != api.DepartmentsEndpoint {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`[{"id_dependencia": 1, "nombre": "Aseo"}, {"id_dependencia": 2, "nombre": "Alumbrado"}]`))
	}))
	defer srv.Close()

	records, err := testClient(srv.URL).FetchDepartments()
	if err != nil {
		t.Fatalf("FetchDepartments: %v", err)
	}
	if len(records) != 2 || records[0].Name != "Aseo" {
		t.Errorf("unexpected records: %+v", records)
	}
}
