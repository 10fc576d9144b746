package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/gdugdh24/matchmaker-backend/internal/domain"
	"github.com/gdugdh24/matchmaker-backend/internal/infrastructure/logger"
	"github.com/gdugdh24/matchmaker-backend/internal/infrastructure/tracing"
	"github.com/gdugdh24/matchmaker-backend/internal/repository"
)

// SupportMatcher is notified the first time a user saves matching facts.
type SupportMatcher interface {
	EnsureSupportMatch(ctx context.Context, userID int) (*domain.Match, error)
}

type ProfileUseCase struct {
	profileRepo repository.ProfileRepository
	support     SupportMatcher
	validate    *validator.Validate
	log         *logger.Logger
}

func NewProfileUseCase(
	profileRepo repository.ProfileRepository,
	support SupportMatcher,
	log *logger.Logger,
) *ProfileUseCase {
	validate := validator.New()
	validate.RegisterStructValidation(validateLookingFor, LookingForRequest{})
	validate.RegisterStructValidation(validateFacts, UpdateFactsRequest{})

	return &ProfileUseCase{
		profileRepo: profileRepo,
		support:     support,
		validate:    validate,
		log:         log,
	}
}

// LocationRequest represents profile coordinates
type LocationRequest struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lon float64 `json:"lon" validate:"gte=-180,lte=180"`
}

// LookingForRequest represents partner preferences
type LookingForRequest struct {
	Genders           []domain.Gender           `json:"genders" validate:"omitempty,max=5,dive,oneof=male female nonbinary other everyone"`
	MinAge            int                       `json:"min_age" validate:"omitempty,min=18,max=99"`
	MaxAge            int                       `json:"max_age" validate:"omitempty,min=18,max=99"`
	MaxDistanceKm     float64                   `json:"max_distance_km" validate:"omitempty,gt=0,lte=20000"`
	RelationshipTypes []domain.RelationshipType `json:"relationship_types" validate:"omitempty,max=4,dive,oneof=casual serious friends activity"`
}

// UpdateFactsRequest replaces the caller's matching facts
type UpdateFactsRequest struct {
	DisplayName    string                  `json:"display_name" validate:"omitempty,max=100"`
	Gender         domain.Gender           `json:"gender" validate:"omitempty,oneof=male female nonbinary other"`
	DateOfBirth    *time.Time              `json:"date_of_birth"`
	Location       *LocationRequest        `json:"location"`
	TagIDs         []int                   `json:"tag_ids" validate:"omitempty,max=50,dive,gt=0"`
	InterestIDs    []int                   `json:"interest_ids" validate:"omitempty,max=50,dive,gt=0"`
	Mood           domain.Mood             `json:"mood" validate:"omitempty,oneof=lowEnergy open chatty adventurous"`
	ResponsePace   domain.ResponsePace     `json:"response_pace" validate:"omitempty,oneof=quick moderate slow variable"`
	DatePace       domain.DatePace         `json:"date_pace" validate:"omitempty,oneof=ready slow virtual flexible"`
	PreferredTimes []domain.TimePreference `json:"preferred_times" validate:"omitempty,max=5,dive,oneof=morning afternoon evening night flexible"`
	LookingFor     *LookingForRequest      `json:"looking_for"`
	IsVisible      *bool                   `json:"is_visible"`
}

func validateLookingFor(sl validator.StructLevel) {
	lf := sl.Current().Interface().(LookingForRequest)
	if lf.MinAge > 0 && lf.MaxAge > 0 && lf.MinAge > lf.MaxAge {
		sl.ReportError(lf.MinAge, "MinAge", "min_age", "ltefield", "MaxAge")
	}
}

func validateFacts(sl validator.StructLevel) {
	req := sl.Current().Interface().(UpdateFactsRequest)
	if req.DateOfBirth != nil && req.DateOfBirth.After(time.Now()) {
		sl.ReportError(req.DateOfBirth, "DateOfBirth", "date_of_birth", "past", "")
	}
}

// GetFacts returns the caller's matching facts
func (uc *ProfileUseCase) GetFacts(ctx context.Context, userID int) (*domain.ProfileFacts, error) {
	facts, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return facts, nil
}

// UpdateFacts validates and stores the caller's matching facts. Saving facts
// for the first time also sets up the support match.
func (uc *ProfileUseCase) UpdateFacts(ctx context.Context, userID int, req *UpdateFactsRequest) (*domain.ProfileFacts, error) {
	ctx, span := tracing.StartSpan(ctx, "profile.UpdateFacts")
	defer span.End()

	if err := uc.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidPreferences, describe(err))
	}

	facts := req.toFacts(userID)
	created, err := uc.profileRepo.Upsert(ctx, facts)
	if err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	if created && uc.support != nil {
		if _, err := uc.support.EnsureSupportMatch(ctx, userID); err != nil {
			uc.log.Warn("failed to create support match", "user_id", userID, "error", err)
		}
	}
	return facts, nil
}

func (req *UpdateFactsRequest) toFacts(userID int) *domain.ProfileFacts {
	facts := &domain.ProfileFacts{
		UserID:         userID,
		DisplayName:    strings.TrimSpace(req.DisplayName),
		Gender:         req.Gender,
		DateOfBirth:    req.DateOfBirth,
		TagIDs:         dedupe(req.TagIDs),
		InterestIDs:    dedupe(req.InterestIDs),
		Mood:           req.Mood,
		ResponsePace:   req.ResponsePace,
		DatePace:       req.DatePace,
		PreferredTimes: dedupe(req.PreferredTimes),
		IsVisible:      true,
	}
	if req.IsVisible != nil {
		facts.IsVisible = *req.IsVisible
	}
	if req.Location != nil {
		facts.Location = &domain.Coordinates{Lat: req.Location.Lat, Lon: req.Location.Lon}
	}
	if lf := req.LookingFor; lf != nil {
		facts.LookingFor = &domain.LookingFor{
			Genders:           dedupe(lf.Genders),
			MinAge:            lf.MinAge,
			MaxAge:            lf.MaxAge,
			MaxDistanceKm:     lf.MaxDistanceKm,
			RelationshipTypes: dedupe(lf.RelationshipTypes),
		}
	}
	return facts
}

func dedupe[T comparable](items []T) []T {
	out := make([]T, 0, len(items))
	seen := make(map[T]bool, len(items))
	for _, item := range items {
		if seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}

// describe turns validator errors into a short field list.
func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
	}
	return strings.Join(parts, ", ")
}
