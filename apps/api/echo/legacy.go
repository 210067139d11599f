package echoapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/letscatchup/core/pin"
)

const legacyRecentLimit = 500

// legacyApi mirrors the pre-rewrite endpoint shape byte for byte: flat
// payloads, plain-text errors, permissive CORS on every response. New
// consumers should use /v1 instead.
type legacyApi struct {
	svc *pin.Service
}

func registerLegacyAPI(g *echo.Group, svc *pin.Service) {
	api := legacyApi{svc: svc}

	g.Use(legacyCORSMiddleware())
	g.GET("/pins", api.query)
	g.POST("/pins", api.create)
	g.OPTIONS("/pins", api.preflight)
	g.PUT("/pins", api.methodNotAllowed)
	g.PATCH("/pins", api.methodNotAllowed)
	g.DELETE("/pins", api.methodNotAllowed)
}

func legacyCORSMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			h := ctx.Response().Header()
			h.Set("Access-Control-Allow-Origin", "*")
			h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type")
			return next(ctx)
		}
	}
}

// legacyPin is the old wire shape: contact details live under a nested
// contact_info object and timestamps are omitted.
type legacyPin struct {
	ID          int               `json:"id"`
	FullName    string            `json:"full_name"`
	SchoolName  string            `json:"school_name"`
	City        string            `json:"city"`
	Latitude    float64           `json:"latitude"`
	Longitude   float64           `json:"longitude"`
	BatchYear   int               `json:"batch_year,omitempty"`
	Profession  string            `json:"profession,omitempty"`
	Company     string            `json:"company,omitempty"`
	Role        string            `json:"role"`
	ContactInfo legacyContactInfo `json:"contact_info"`
	AvatarURL   string            `json:"avatar_url,omitempty"`
}

type legacyContactInfo struct {
	Email     string `json:"email,omitempty"`
	Mobile    string `json:"mobile,omitempty"`
	Linkedin  string `json:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

// UnmarshalJSON accepts both the structured object and the single free-text
// string the original store kept in its contact_info column. Text is split
// into the structured fields best-effort; unrecognizable parts are dropped.
func (ci *legacyContactInfo) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*ci = parseLegacyContactText(s)
		return nil
	}
	type plain legacyContactInfo
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*ci = legacyContactInfo(p)
	return nil
}

func parseLegacyContactText(s string) (ci legacyContactInfo) {
	isSep := func(r rune) bool { return r == ' ' || r == ',' || r == ';' || r == '|' }
	for _, tok := range strings.FieldsFunc(s, isSep) {
		low := strings.ToLower(tok)
		switch {
		case strings.Contains(low, "linkedin."):
			ci.Linkedin = withScheme(tok)
		case strings.Contains(low, "instagram."):
			ci.Instagram = withScheme(tok)
		case strings.Contains(tok, "@"):
			ci.Email = tok
		default:
			if num, ok := phoneDigits(tok); ok {
				ci.Mobile = num
			}
		}
	}
	return ci
}

func withScheme(u string) string {
	if strings.Contains(u, "://") {
		return u
	}
	return "https://" + u
}

// phoneDigits strips phone punctuation and reports whether the token was a
// plausible phone number.
func phoneDigits(s string) (string, bool) {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' || r == '-' || r == '(' || r == ')' || r == '.':
		default:
			return "", false
		}
	}
	if b.Len() < 6 {
		return "", false
	}
	return b.String(), true
}

func toLegacyPin(p pin.Pin) legacyPin {
	return legacyPin{
		ID:         p.ID,
		FullName:   p.FullName,
		SchoolName: p.SchoolName,
		City:       p.City,
		Latitude:   p.Latitude,
		Longitude:  p.Longitude,
		BatchYear:  p.BatchYear,
		Profession: p.Profession,
		Company:    p.Company,
		Role:       p.Role,
		ContactInfo: legacyContactInfo{
			Email:     p.ContactEmail,
			Mobile:    p.MobileNumber,
			Linkedin:  p.LinkedinURL,
			Instagram: p.InstagramURL,
		},
		AvatarURL: p.AvatarURL,
	}
}

func (api *legacyApi) query(ctx echo.Context) error {
	pins, err := api.svc.Recent(legacyRecentLimit)
	if err != nil {
		return ctx.String(http.StatusInternalServerError, "Internal Server Error")
	}

	out := make([]legacyPin, 0, len(pins))
	for _, p := range pins {
		out = append(out, toLegacyPin(p))
	}
	return ctx.JSON(http.StatusOK, out)
}

func (api *legacyApi) create(ctx echo.Context) error {
	var data legacyPin
	if err := ctx.Bind(&data); err != nil {
		return ctx.String(http.StatusBadRequest, "Missing required fields")
	}

	np := pin.NewPin{
		FullName:     data.FullName,
		SchoolName:   data.SchoolName,
		City:         data.City,
		Latitude:     data.Latitude,
		Longitude:    data.Longitude,
		BatchYear:    data.BatchYear,
		Profession:   data.Profession,
		Company:      data.Company,
		Role:         data.Role,
		ContactEmail: data.ContactInfo.Email,
		MobileNumber: data.ContactInfo.Mobile,
		LinkedinURL:  data.ContactInfo.Linkedin,
		InstagramURL: data.ContactInfo.Instagram,
		AvatarURL:    data.AvatarURL,
	}
	if err := np.Validate(); err != nil {
		return ctx.String(http.StatusBadRequest, "Missing required fields")
	}

	p, _, err := api.svc.Create(np)
	if err != nil {
		return ctx.String(http.StatusInternalServerError, "Internal Server Error")
	}
	return ctx.JSON(http.StatusCreated, toLegacyPin(p))
}

func (api *legacyApi) preflight(ctx echo.Context) error {
	return ctx.NoContent(http.StatusOK)
}

func (api *legacyApi) methodNotAllowed(ctx echo.Context) error {
	return ctx.String(http.StatusMethodNotAllowed, "Method not allowed")
}
