// Package api holds the endpoint paths and wire types of the remote
// affiliate-platform API.
package api

import "encoding/json"

const (
	LoginEndpoint        = "/api/login"                 // POST
	PostsEndpoint        = "/api/post"                  // GET /api/post/{partyID}?page={n}&limit={pageSize}
	DepartmentsEndpoint  = "/api/reportes/dependencias" // GET
	PartyReportsEndpoint = "/api/reportes/partido"      // GET /api/reportes/partido/{partyID}
	CreateReportEndpoint = "/api/reportes/crear"        // POST, multipart
	BalanceEndpoint      = "/api/saldo"                 // GET /api/saldo/{userID}
	InvitationsEndpoint  = "/api/invitaciones/crear"    // POST
	DirectoryEndpoint    = "/api/directorio"            // GET /api/directorio/{partyID}
)

// Multipart field names for CreateReportEndpoint.
const (
	FieldUserID       = "id_usuario"
	FieldTitle        = "titulo"
	FieldDescription  = "descripcion"
	FieldDepartmentID = "id_dependencia"
	FieldReportDate   = "fecha_reporte" // YYYY-MM-DD
	FieldLatitude     = "latitud"
	FieldLongitude    = "longitud"
	FieldImage        = "imagen"
)

type LoginArgs struct {
	Phone    string `json:"telefono"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type Post struct {
	ID          int64  `json:"id_contenido"`
	Author      string `json:"autor"`
	Caption     string `json:"descripcion"`
	PublishedAt string `json:"fecha_publicacion"`
	AuthorPhoto string `json:"foto_perfil"`
	PartyName   string `json:"nombre_partido"`
	ImageURL    string `json:"ruta_imagen"`
}

// FeedPageResponse is the payload of PostsEndpoint. TotalPages and Total are
// kept raw: servers have been seen sending them as numbers, strings or not at
// all, and the page-count policy has to distinguish those cases instead of
// failing the whole decode.
type FeedPageResponse struct {
	Posts      []Post          `json:"posts"`
	TotalPages json.RawMessage `json:"totalPages,omitempty"`
	Total      json.RawMessage `json:"total,omitempty"`
}

type DepartmentRecord struct {
	ID   int64  `json:"id_dependencia"`
	Name string `json:"nombre"`
}

// ReportRecord is one entry of the party report history.
type ReportRecord struct {
	Title       string `json:"titulo"`
	Description string `json:"descripcion"`
	PhotoURL    string `json:"foto"`
	ReportDate  string `json:"fecha_reporte"`
	Status      string `json:"estatus"`
	Department  string `json:"dependencia"`
}

type CreateReportResponse struct {
	Message string `json:"message"`
}

type InvitationArgs struct {
	UserID       int64  `json:"id_usuario"`
	Name         string `json:"nombre"`
	Phone        string `json:"telefono"`
	Neighborhood string `json:"colonia"`
	InviteCode   string `json:"codigo_invitacion,omitempty"`
}

type UsageMeter struct {
	Kind  string `json:"tipo"` // internet, sms, minutos
	Used  string `json:"usado"`
	Total string `json:"total"`
	Unit  string `json:"unidad"`
}

type BalanceResponse struct {
	Plan      string       `json:"plan"`
	ExpiresAt string       `json:"fecha_expiracion"` // YYYY-MM-DD
	Meters    []UsageMeter `json:"consumo"`
}

type DirectoryEntry struct {
	Name     string `json:"nombre"`
	Category string `json:"categoria"`
	Phone    string `json:"telefono"`
	Address  string `json:"direccion"`
	Schedule string `json:"horario"`
}
