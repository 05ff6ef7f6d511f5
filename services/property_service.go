package services

import (
	"context"
	goerrors "errors"
	"fmt"

	"rento/constants"
	"rento/errors"
	"rento/models"
	"rento/services/logger"
	"rento/storage"

	"github.com/google/uuid"
)

type PropertyService struct {
	properties *storage.Collection[models.Property]
	logger     logger.Logger
}

type PropertyServiceOptions struct {
	Store  storage.Store
	Logger logger.Logger
}

func NewPropertyService(opts PropertyServiceOptions) *PropertyService {
	return &PropertyService{
		properties: storage.NewCollection(opts.Store, constants.KeyProperties,
			storage.WithSeed(SampleProperties)),
		logger: opts.Logger,
	}
}

// SampleProperties is served while no property has been saved
func SampleProperties() []models.Property {
	return []models.Property{
		{
			ID:            "1",
			Name:          "Sunny Beach House",
			Address:       "123 Ocean Drive, Miami, FL",
			Description:   "Beautiful beachfront property with stunning ocean views",
			Status:        models.PropertyOccupied,
			PricePerNight: 250,
			Images:        []string{"https://images.unsplash.com/photo-1499793983690-e29da59ef1c2"},
		},
		{
			ID:               "2",
			Name:             "Mountain Retreat Cabin",
			Address:          "456 Pine Road, Aspen, CO",
			Description:      "Cozy cabin in the heart of the mountains",
			Status:           models.PropertyVacant,
			PricePerNight:    180,
			IsDynamicPricing: true,
			Images:           []string{"https://images.unsplash.com/photo-1542718610-a1d656d1884c"},
		},
		{
			ID:            "3",
			Name:          "Downtown Loft",
			Address:       "789 Main Street, New York, NY",
			Description:   "Modern loft in the center of the city",
			Status:        models.PropertyOccupied,
			PricePerNight: 300,
			Images:        []string{"https://images.unsplash.com/photo-1502672260266-1c1ef2d93688"},
		},
		{
			ID:               "4",
			Name:             "Lakeside Cottage",
			Address:          "101 Lake View Road, Lake Tahoe, CA",
			Description:      "Charming cottage with beautiful lake views",
			Status:           models.PropertyVacant,
			PricePerNight:    200,
			IsDynamicPricing: true,
			Images:           []string{"https://images.unsplash.com/photo-1475087542963-13ab5e611954"},
		},
	}
}

func (s *PropertyService) List(ctx context.Context) ([]models.Property, error) {
	props, err := s.properties.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load properties: %w", err)
	}
	return props, nil
}

func (s *PropertyService) Get(ctx context.Context, id string) (*models.Property, error) {
	props, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range props {
		if props[i].ID == id {
			return &props[i], nil
		}
	}
	return nil, errors.ErrPropertyNotFound
}

// Add appends the property, generating an id when none was supplied.
// An id that is already stored is rejected and nothing is written.
func (s *PropertyService) Add(ctx context.Context, p models.Property) (*models.Property, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	_, err := s.properties.Mutate(ctx, func(props []models.Property) ([]models.Property, error) {
		for i := range props {
			if props[i].ID == p.ID {
				return nil, errors.ErrPropertyExists
			}
		}
		return append(props, p), nil
	})
	if goerrors.Is(err, errors.ErrPropertyExists) {
		return nil, err
	}
	if err != nil {
		s.logger.Error("add property %s: %v", p.ID, err)
		return nil, fmt.Errorf("save properties: %w", err)
	}
	s.logger.Info("property %s added", p.ID)
	return &p, nil
}

// Update replaces the property with the same id
func (s *PropertyService) Update(ctx context.Context, p models.Property) (*models.Property, error) {
	return s.Modify(ctx, p.ID, func(existing *models.Property) error {
		*existing = p
		return nil
	})
}

// Modify applies fn to the stored property and persists the result.
// Nothing is written if the id is unknown or fn fails.
func (s *PropertyService) Modify(ctx context.Context, id string, fn func(*models.Property) error) (*models.Property, error) {
	var updated models.Property
	_, err := s.properties.Mutate(ctx, func(props []models.Property) ([]models.Property, error) {
		for i := range props {
			if props[i].ID != id {
				continue
			}
			if err := fn(&props[i]); err != nil {
				return nil, err
			}
			props[i].ID = id
			updated = props[i]
			return props, nil
		}
		return nil, errors.ErrPropertyNotFound
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *PropertyService) Delete(ctx context.Context, id string) error {
	_, err := s.properties.Mutate(ctx, func(props []models.Property) ([]models.Property, error) {
		kept := make([]models.Property, 0, len(props))
		for _, p := range props {
			if p.ID != id {
				kept = append(kept, p)
			}
		}
		if len(kept) == len(props) {
			return nil, errors.ErrPropertyNotFound
		}
		return kept, nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("property %s deleted", id)
	return nil
}

// PropertySearchResult holds matches and a suggestion when nothing matched exactly
type PropertySearchResult struct {
	Properties []models.Property
	Fuzzy      bool
	Suggestion string
}

// Search matches name or address ignoring case and diacritics, then falls back
// to fuzzy word matching on names.
func (s *PropertyService) Search(ctx context.Context, query string) (*PropertySearchResult, error) {
	props, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	q := normalizeInput(query)
	if q == "" {
		return &PropertySearchResult{Properties: props}, nil
	}

	matches := make([]models.Property, 0)
	for _, p := range props {
		if containsNormalized(p.Name, q) || containsNormalized(p.Address, q) {
			matches = append(matches, p)
		}
	}
	if len(matches) > 0 {
		return &PropertySearchResult{Properties: matches}, nil
	}

	result := &PropertySearchResult{Properties: matches, Fuzzy: true}
	names := make([]string, 0, len(props))
	byName := make(map[string]string, len(props))
	for _, p := range props {
		if fuzzyWordMatch(q, p.Name) {
			result.Properties = append(result.Properties, p)
		}
		n := normalizeInput(p.Name)
		names = append(names, n)
		byName[n] = p.Name
	}
	if len(names) > 0 {
		result.Suggestion = byName[createMatcher(names).Closest(q)]
	}
	return result, nil
}
