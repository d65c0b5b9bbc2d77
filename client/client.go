// Package client talks to the remote affiliate-platform API.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"afiliado/api"
	"afiliado/config"
)

// Client handles communication with the affiliate platform API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(cfg *config.Config) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.APIURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.HTTPTimeout,
		},
	}
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(phone, password string) (string, error) {
	body, err := json.Marshal(api.LoginArgs{Phone: phone, Password: password})
	if err != nil {
		return "", fmt.Errorf("failed to marshal credentials: %w", err)
	}

	resp, err := c.httpClient.Post(c.baseURL+api.LoginEndpoint, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return "", &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &ServerRejected{StatusCode: resp.StatusCode, Message: serverMessage(resp.Body)}
	}

	var payload api.LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", &ParseError{Endpoint: api.LoginEndpoint, Err: err}
	}
	return payload.Token, nil
}

// FetchFeedPage requests one page of the party feed. The payload must carry a
// posts array; a response without one is a ParseError and the caller keeps its
// previous page.
func (c *Client) FetchFeedPage(partyID int64, page, limit int) (*api.FeedPageResponse, error) {
	endpoint := fmt.Sprintf("%s/%d?page=%d&limit=%d", api.PostsEndpoint, partyID, page, limit)
	var payload api.FeedPageResponse
	if err := c.getJSON(endpoint, &payload); err != nil {
		return nil, err
	}
	if payload.Posts == nil {
		return nil, &ParseError{Endpoint: api.PostsEndpoint, Err: fmt.Errorf("missing posts array")}
	}
	return &payload, nil
}

func (c *Client) FetchDepartments() ([]api.DepartmentRecord, error) {
	var records []api.DepartmentRecord
	if err := c.getJSON(api.DepartmentsEndpoint, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// FetchReports returns the report history of a party.
func (c *Client) FetchReports(partyID int64) ([]api.ReportRecord, error) {
	var records []api.ReportRecord
	if err := c.getJSON(fmt.Sprintf("%s/%d", api.PartyReportsEndpoint, partyID), &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *Client) FetchBalance(userID int64) (*api.BalanceResponse, error) {
	var payload api.BalanceResponse
	if err := c.getJSON(fmt.Sprintf("%s/%d", api.BalanceEndpoint, userID), &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *Client) FetchDirectory(partyID int64) ([]api.DirectoryEntry, error) {
	var entries []api.DirectoryEntry
	if err := c.getJSON(fmt.Sprintf("%s/%d", api.DirectoryEndpoint, partyID), &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *Client) SendInvitation(invitation api.InvitationArgs) error {
	body, err := json.Marshal(invitation)
	if err != nil {
		return fmt.Errorf("failed to marshal invitation: %w", err)
	}

	resp, err := c.httpClient.Post(c.baseURL+api.InvitationsEndpoint, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &ServerRejected{StatusCode: resp.StatusCode, Message: serverMessage(resp.Body)}
	}
	return nil
}

// ReportSubmission is the packaged form of a report draft, ready to be sent.
type ReportSubmission struct {
	UserID       int64
	Title        string
	Description  string
	DepartmentID string
	ReportDate   string // YYYY-MM-DD
	Latitude     float64
	Longitude    float64
	PhotoPath    string // optional local file
}

// CreateReport posts a report as a multipart form. Scalar fields go as text
// parts; the photo, when present, as a binary part whose filename and MIME
// type come from the local file extension (jpg when there is none).
func (c *Client) CreateReport(sub ReportSubmission) (*api.CreateReportResponse, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	fields := map[string]string{
		api.FieldUserID:       strconv.FormatInt(sub.UserID, 10),
		api.FieldTitle:        sub.Title,
		api.FieldDescription:  sub.Description,
		api.FieldDepartmentID: sub.DepartmentID,
		api.FieldReportDate:   sub.ReportDate,
		api.FieldLatitude:     strconv.FormatFloat(sub.Latitude, 'f', -1, 64),
		api.FieldLongitude:    strconv.FormatFloat(sub.Longitude, 'f', -1, 64),
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, fmt.Errorf("failed to write %s field: %w", name, err)
		}
	}

	if sub.PhotoPath != "" {
		if err := attachPhoto(writer, sub.PhotoPath); err != nil {
			return nil, err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish multipart body: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+api.CreateReportEndpoint, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ServerRejected{StatusCode: resp.StatusCode, Message: serverMessage(resp.Body)}
	}

	var result api.CreateReportResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &ParseError{Endpoint: api.CreateReportEndpoint, Err: err}
	}
	return &result, nil
}

func attachPhoto(writer *multipart.Writer, photoPath string) error {
	file, err := os.Open(photoPath)
	if err != nil {
		return fmt.Errorf("failed to open photo: %w", err)
	}
	defer file.Close()

	fileName := filepath.Base(photoPath)
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(fileName)), ".")
	if ext == "" {
		ext = "jpg"
	}

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name=%q; filename=%q`, api.FieldImage, fileName))
	header.Set("Content-Type", "image/"+ext)

	part, err := writer.CreatePart(header)
	if err != nil {
		return fmt.Errorf("failed to create photo part: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("failed to copy photo data: %w", err)
	}
	return nil
}

func (c *Client) getJSON(endpoint string, out any) error {
	resp, err := c.httpClient.Get(c.baseURL + endpoint)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &ServerRejected{StatusCode: resp.StatusCode, Message: serverMessage(resp.Body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ParseError{Endpoint: endpoint, Err: err}
	}
	return nil
}

// serverMessage extracts the optional message field of an error body.
func serverMessage(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 1<<16))
	if err != nil {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return ""
	}
	return payload.Message
}

// BaseURL reports the server the client was built for. Handy in logs.
func (c *Client) BaseURL() string { return c.baseURL }
