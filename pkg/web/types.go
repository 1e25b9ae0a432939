package web

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/craftplan/craftplan/pkg/db/models"
	"github.com/craftplan/craftplan/pkg/proto"
	"github.com/craftplan/craftplan/pkg/webhook"
	"github.com/gorilla/mux"
)

// pathID parses a numeric path variable.
func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[name], 10, 64) //nolint:wrapcheck
}

func nullString(s sql.NullString) string {
	if s.Valid {
		return s.String
	}
	return ""
}

func nullTime(t sql.NullTime) *time.Time {
	if t.Valid {
		return &t.Time
	}
	return nil
}

func nullInt64(i sql.NullInt64) *int64 {
	if i.Valid {
		return &i.Int64
	}
	return nil
}

type userResponse struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

func toUserResponse(u proto.User) userResponse {
	return userResponse{
		ID:          u.ID(),
		Email:       u.Email(),
		DisplayName: u.DisplayName(),
	}
}

type orgResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toOrgResponse(o models.Organization) orgResponse {
	return orgResponse{
		ID:        o.ID,
		Name:      o.Name,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

type memberResponse struct {
	OrgID     int64         `json:"org_id"`
	UserID    int64         `json:"user_id"`
	Role      proto.OrgRole `json:"role"`
	CreatedAt time.Time     `json:"created_at"`
}

func toMemberResponse(m models.OrganizationMember) memberResponse {
	return memberResponse{
		OrgID:     m.OrgID,
		UserID:    m.UserID,
		Role:      m.Role,
		CreatedAt: m.CreatedAt,
	}
}

type projectResponse struct {
	ID        int64     `json:"id"`
	OrgID     int64     `json:"org_id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toProjectResponse(p models.Project) projectResponse {
	return projectResponse{
		ID:        p.ID,
		OrgID:     p.OrgID,
		Name:      p.Name,
		Address:   nullString(p.Address),
		Status:    p.Status,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

type phaseResponse struct {
	ID        int64  `json:"id"`
	ProjectID int64  `json:"project_id"`
	Kind      string `json:"kind"`
	Position  int    `json:"position"`
}

func toPhaseResponse(p models.Phase) phaseResponse {
	return phaseResponse{
		ID:        p.ID,
		ProjectID: p.ProjectID,
		Kind:      p.Kind,
		Position:  p.Position,
	}
}

type stageResponse struct {
	ID          int64      `json:"id"`
	PhaseID     int64      `json:"phase_id"`
	Name        string     `json:"name"`
	Kind        string     `json:"kind"`
	Position    int        `json:"position"`
	Enabled     bool       `json:"enabled"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func toStageResponse(s models.Stage) stageResponse {
	return stageResponse{
		ID:          s.ID,
		PhaseID:     s.PhaseID,
		Name:        s.Name,
		Kind:        s.Kind,
		Position:    s.Position,
		Enabled:     s.Enabled,
		CompletedAt: nullTime(s.CompletedAt),
	}
}

type contactResponse struct {
	ID        int64     `json:"id"`
	OrgID     int64     `json:"org_id"`
	UserID    *int64    `json:"user_id,omitempty"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Company   string    `json:"company,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toContactResponse(c models.Contact) contactResponse {
	return contactResponse{
		ID:        c.ID,
		OrgID:     c.OrgID,
		UserID:    nullInt64(c.UserID),
		Name:      c.Name,
		Email:     nullString(c.Email),
		Phone:     nullString(c.Phone),
		Company:   nullString(c.Company),
		CreatedAt: c.CreatedAt,
	}
}

type shareResponse struct {
	ID         int64      `json:"id"`
	ProjectID  int64      `json:"project_id"`
	OrgID      int64      `json:"org_id"`
	Level      string     `json:"level"`
	AcceptedAt *time.Time `json:"accepted_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

func toShareResponse(s models.ProjectShare) shareResponse {
	return shareResponse{
		ID:         s.ID,
		ProjectID:  s.ProjectID,
		OrgID:      s.OrgID,
		Level:      s.Level.String(),
		AcceptedAt: nullTime(s.AcceptedAt),
		CreatedAt:  s.CreatedAt,
	}
}

type grantResponse struct {
	ProjectID int64     `json:"project_id"`
	ContactID int64     `json:"contact_id"`
	Level     string    `json:"level"`
	Role      string    `json:"role,omitempty"`
	IsPrimary bool      `json:"is_primary"`
	CreatedAt time.Time `json:"created_at"`
}

func toGrantResponse(g models.ProjectContact) grantResponse {
	return grantResponse{
		ProjectID: g.ProjectID,
		ContactID: g.ContactID,
		Level:     g.Level.String(),
		Role:      g.Role,
		IsPrimary: g.IsPrimary,
		CreatedAt: g.CreatedAt,
	}
}

type templateResponse struct {
	ID        int64     `json:"id"`
	OrgID     int64     `json:"org_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func toTemplateResponse(t models.StageTemplate) templateResponse {
	return templateResponse{
		ID:        t.ID,
		OrgID:     t.OrgID,
		Name:      t.Name,
		CreatedAt: t.CreatedAt,
	}
}

type templateItemResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Position int    `json:"position"`
}

func toTemplateItemResponse(i models.StageTemplateItem) templateItemResponse {
	return templateItemResponse{
		ID:       i.ID,
		Name:     i.Name,
		Kind:     i.Kind,
		Position: i.Position,
	}
}

type costResponse struct {
	ID            int64     `json:"id"`
	StageID       int64     `json:"stage_id"`
	Description   string    `json:"description"`
	EstimateCents *int64    `json:"estimate_cents,omitempty"`
	ActualCents   *int64    `json:"actual_cents,omitempty"`
	Paid          bool      `json:"paid"`
	CreatedAt     time.Time `json:"created_at"`
}

func toCostResponse(c models.Cost) costResponse {
	return costResponse{
		ID:            c.ID,
		StageID:       c.StageID,
		Description:   c.Description,
		EstimateCents: nullInt64(c.EstimateCents),
		ActualCents:   nullInt64(c.ActualCents),
		Paid:          c.Paid,
		CreatedAt:     c.CreatedAt,
	}
}

type noteResponse struct {
	ID        int64     `json:"id"`
	StageID   int64     `json:"stage_id"`
	AuthorID  int64     `json:"author_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

func toNoteResponse(n models.Note) noteResponse {
	return noteResponse{
		ID:        n.ID,
		StageID:   n.StageID,
		AuthorID:  n.AuthorID,
		Body:      n.Body,
		CreatedAt: n.CreatedAt,
	}
}

type webhookResponse struct {
	ID          int64           `json:"id"`
	ProjectID   int64           `json:"project_id"`
	URL         string          `json:"url"`
	ContentType string          `json:"content_type"`
	Active      bool            `json:"active"`
	Events      []webhook.Event `json:"events"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func toWebhookResponse(h webhook.Hook) webhookResponse {
	return webhookResponse{
		ID:          h.ID,
		ProjectID:   h.ProjectID,
		URL:         h.URL,
		ContentType: h.ContentType.String(),
		Active:      h.Active,
		Events:      h.Events,
		CreatedAt:   h.CreatedAt,
		UpdatedAt:   h.UpdatedAt,
	}
}

type deliveryResponse struct {
	ID             string        `json:"id"`
	Event          webhook.Event `json:"event"`
	RequestURL     string        `json:"request_url"`
	RequestMethod  string        `json:"request_method"`
	RequestError   string        `json:"request_error,omitempty"`
	ResponseStatus int           `json:"response_status"`
	CreatedAt      time.Time     `json:"created_at"`
}

func toDeliveryResponse(d webhook.Delivery) deliveryResponse {
	return deliveryResponse{
		ID:             d.ID.String(),
		Event:          d.Event,
		RequestURL:     d.RequestURL,
		RequestMethod:  d.RequestMethod,
		RequestError:   nullString(d.RequestError),
		ResponseStatus: d.ResponseStatus,
		CreatedAt:      d.CreatedAt,
	}
}
