package handler

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/gear-planner/internal/domain"
)

// CategoryResponse is the JSON view of a gear category.
type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
}

// ActivityResponse is the JSON view of an activity type.
type ActivityResponse struct {
	ID                    uuid.UUID `json:"id"`
	Name                  string    `json:"name"`
	Description           string    `json:"description"`
	TypicalGearCategories []string  `json:"typical_gear_categories"`
}

// CatalogItemResponse is the JSON view of a catalog entry.
type CatalogItemResponse struct {
	ID                 uuid.UUID  `json:"id"`
	Name               string     `json:"name"`
	Description        string     `json:"description"`
	CategoryID         *uuid.UUID `json:"category_id"`
	CategoryName       string     `json:"category_name,omitempty"`
	TypicalWeightGrams *int       `json:"typical_weight_grams"`
	CommonActivities   []string   `json:"common_activities"`
	WeatherConditions  []string   `json:"weather_conditions"`
	PopularityScore    int        `json:"popularity_score"`
}

// ListCategories handles GET /categories.
func (s *Server) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.svc.Catalog.Categories(r.Context())
	if err != nil {
		s.writeError(w, r, err, "category")
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(cats, categoryToResponse))
}

// GetCategory handles GET /categories/{id}.
func (s *Server) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	cat, err := s.svc.Catalog.Category(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "category")
		return
	}
	writeJSON(w, http.StatusOK, categoryToResponse(cat))
}

// ListActivities handles GET /activities?prefix=.
func (s *Server) ListActivities(w http.ResponseWriter, r *http.Request) {
	var prefix *string
	if err := queryParam(r, "prefix", &prefix); err != nil {
		s.writeError(w, r, err, "")
		return
	}
	var p string
	if prefix != nil {
		p = *prefix
	}
	acts, err := s.svc.Catalog.Activities(r.Context(), p)
	if err != nil {
		s.writeError(w, r, err, "activity")
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(acts, activityToResponse))
}

// GetActivity handles GET /activities/{id}.
func (s *Server) GetActivity(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	act, err := s.svc.Catalog.Activity(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "activity")
		return
	}
	writeJSON(w, http.StatusOK, activityToResponse(act))
}

// ListCatalog handles GET /catalog?category_id=&page=&limit=.
func (s *Server) ListCatalog(w http.ResponseWriter, r *http.Request) {
	var categoryID *uuid.UUID
	if err := queryParam(r, "category_id", &categoryID); err != nil {
		s.writeError(w, r, err, "")
		return
	}
	p, err := pagination(r)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	page, err := s.svc.Catalog.Items(r.Context(), categoryID, p)
	if err != nil {
		s.writeError(w, r, err, "catalog item")
		return
	}
	writeJSON(w, http.StatusOK, listResponse(page, catalogItemToResponse))
}

// CatalogByActivity handles GET /catalog/by-activity. Activities may be given
// as repeated parameters (?activities=Hiking&activities=Camping) or as one
// comma-separated value.
func (s *Server) CatalogByActivity(w http.ResponseWriter, r *http.Request) {
	var raw []string
	if err := queryParam(r, "activities", &raw); err != nil {
		s.writeError(w, r, err, "")
		return
	}
	var acts []string
	for _, v := range raw {
		acts = append(acts, strings.Split(v, ",")...)
	}
	items, err := s.svc.Catalog.ByActivities(r.Context(), acts)
	if err != nil {
		s.writeError(w, r, err, "catalog item")
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(items, catalogItemToResponse))
}

// GetCatalogItem handles GET /catalog/{id}.
func (s *Server) GetCatalogItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	item, err := s.svc.Catalog.Item(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "catalog item")
		return
	}
	writeJSON(w, http.StatusOK, catalogItemToResponse(item))
}

func categoryToResponse(c domain.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description, Icon: c.Icon}
}

func activityToResponse(a domain.ActivityType) ActivityResponse {
	return ActivityResponse{
		ID:                    a.ID,
		Name:                  a.Name,
		Description:           a.Description,
		TypicalGearCategories: nonNil(a.TypicalGearCategories),
	}
}

func catalogItemToResponse(c domain.CatalogItem) CatalogItemResponse {
	return CatalogItemResponse{
		ID:                 c.ID,
		Name:               c.Name,
		Description:        c.Description,
		CategoryID:         c.CategoryID,
		CategoryName:       c.CategoryName,
		TypicalWeightGrams: c.TypicalWeightGrams,
		CommonActivities:   nonNil(c.CommonActivities),
		WeatherConditions:  nonNil(c.WeatherConditions),
		PopularityScore:    c.PopularityScore,
	}
}
