// Package devapi is a local stand-in for the remote affiliate-platform API,
// for development, testing and troubleshooting. Data lives in memory and is
// lost on restart.
package devapi

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"afiliado/api"
)

// Server holds the in-memory fixture data behind the stub endpoints.
type Server struct {
	mu          sync.Mutex
	posts       []api.Post
	departments []api.DepartmentRecord
	reports     []api.ReportRecord
	directory   []api.DirectoryEntry
	balance     api.BalanceResponse

	jwtSecret []byte
}

func New(jwtSecret string) *Server {
	s := &Server{jwtSecret: []byte(jwtSecret)}
	s.seed()
	return s
}

func (s *Server) seed() {
	for i := 1; i <= 25; i++ {
		s.posts = append(s.posts, api.Post{
			ID:          int64(i),
			Author:      "Comité Estatal",
			Caption:     fmt.Sprintf("Publicación %d", i),
			PublishedAt: time.Now().AddDate(0, 0, -i).Format(time.RFC3339),
			PartyName:   "Unidos",
			ImageURL:    fmt.Sprintf("https://cdn.example.com/posts/%d.jpg", i),
		})
	}
	s.departments = []api.DepartmentRecord{
		{ID: 1, Name: "Aseo Público"},
		{ID: 2, Name: "Alumbrado"},
		{ID: 3, Name: "Bacheo"},
	}
	s.directory = []api.DirectoryEntry{
		{Name: "Comité Municipal", Category: "Atención", Phone: "5550000001", Address: "Av. Central 100", Schedule: "L-V 9-17"},
		{Name: "Asesoría Jurídica", Category: "Legal", Phone: "5550000002", Address: "Calle Norte 45", Schedule: "L-V 10-14"},
	}
	s.balance = api.BalanceResponse{
		Plan:      "Plan Afiliado 5.5GB",
		ExpiresAt: time.Now().AddDate(0, 1, 0).Format("2006-01-02"),
		Meters: []api.UsageMeter{
			{Kind: "internet", Used: "4.3", Total: "5.5", Unit: "GB"},
			{Kind: "sms", Used: "120", Total: "250", Unit: "SMS"},
			{Kind: "minutos", Used: "310", Total: "1000", Unit: "min"},
		},
	}
}

func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.POST(api.LoginEndpoint, s.login)
	router.GET(api.PostsEndpoint+"/:partyID", s.feedPage)
	router.GET(api.DepartmentsEndpoint, s.listDepartments)
	router.GET(api.PartyReportsEndpoint+"/:partyID", s.partyReports)
	router.POST(api.CreateReportEndpoint, s.createReport)
	router.GET(api.BalanceEndpoint+"/:userID", s.userBalance)
	router.POST(api.InvitationsEndpoint, s.createInvitation)
	router.GET(api.DirectoryEndpoint+"/:partyID", s.partyDirectory)

	return router
}

// login issues a token for the fixture user. Any 10-digit phone with a
// password of at least 8 characters gets in.
func (s *Server) login(c *gin.Context) {
	var args api.LoginArgs
	if err := c.BindJSON(&args); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "could not read JSON input"})
		return
	}
	if len(args.Phone) != 10 || len(args.Password) < 8 {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid credentials"})
		return
	}

	claims := jwt.MapClaims{
		"id":          int64(7),
		"id_partido":  int64(3),
		"nombre":      "Isai",
		"a_paterno":   "Alejandro",
		"a_materno":   "García",
		"telefono":    args.Phone,
		"foto_perfil": "https://cdn.example.com/profiles/7.jpg",
		"jti":         uuid.NewString(),
		"exp":         time.Now().Add(24 * time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		log.Errorf("Failed to sign dev token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to issue token"})
		return
	}
	c.JSON(http.StatusOK, api.LoginResponse{Token: token})
}

func (s *Server) feedPage(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	start := (page - 1) * limit
	end := start + limit
	if start > len(s.posts) {
		start = len(s.posts)
	}
	if end > len(s.posts) {
		end = len(s.posts)
	}

	// Deliberately reports a raw total instead of a page count, like the
	// production API does.
	c.JSON(http.StatusOK, gin.H{
		"posts": s.posts[start:end],
		"total": len(s.posts),
	})
}

func (s *Server) listDepartments(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.departments)
}

func (s *Server) partyReports(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.reports)
}

func (s *Server) createReport(c *gin.Context) {
	required := []string{
		api.FieldUserID, api.FieldTitle, api.FieldDescription,
		api.FieldDepartmentID, api.FieldReportDate, api.FieldLatitude, api.FieldLongitude,
	}
	values := map[string]string{}
	for _, field := range required {
		v := c.PostForm(field)
		if v == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "missing field: " + field})
			return
		}
		values[field] = v
	}

	deptID, err := strconv.ParseInt(values[api.FieldDepartmentID], 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "bad department id"})
		return
	}

	photoURL := ""
	if file, err := c.FormFile(api.FieldImage); err == nil {
		photoURL = fmt.Sprintf("https://cdn.example.com/reports/%s-%s", uuid.NewString(), file.Filename)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	deptName := ""
	for _, d := range s.departments {
		if d.ID == deptID {
			deptName = d.Name
		}
	}
	if deptName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "unknown department"})
		return
	}

	s.reports = append(s.reports, api.ReportRecord{
		Title:       values[api.FieldTitle],
		Description: values[api.FieldDescription],
		PhotoURL:    photoURL,
		ReportDate:  values[api.FieldReportDate],
		Status:      "pendiente",
		Department:  deptName,
	})
	c.JSON(http.StatusOK, api.CreateReportResponse{Message: "Reporte creado exitosamente."})
}

func (s *Server) userBalance(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.balance)
}

func (s *Server) createInvitation(c *gin.Context) {
	var args api.InvitationArgs
	if err := c.BindJSON(&args); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "could not read JSON input"})
		return
	}
	if args.Name == "" || args.Phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "name and phone are required"})
		return
	}
	log.Infof("Invitation registered for %s (%s), code %s", args.Name, args.Phone, args.InviteCode)
	c.JSON(http.StatusOK, gin.H{"message": "Invitación registrada."})
}

func (s *Server) partyDirectory(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.directory)
}
