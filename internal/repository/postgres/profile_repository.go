package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/huandu/go-sqlbuilder"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/gdugdh24/matchmaker-backend/internal/domain"
	"github.com/gdugdh24/matchmaker-backend/internal/infrastructure/tracing"
	"github.com/gdugdh24/matchmaker-backend/internal/repository"
)

var profileColumns = []string{
	"user_id", "display_name", "gender", "date_of_birth", "latitude", "longitude",
	"tag_ids", "interest_ids", "current_mood", "response_pace", "date_pace", "preferred_times",
	"has_looking_for", "pref_genders", "pref_min_age", "pref_max_age", "pref_max_distance",
	"pref_relationships", "is_visible", "updated_at",
}

// profileRow is the flat storage shape of domain.ProfileFacts.
type profileRow struct {
	UserID            int             `db:"user_id"`
	DisplayName       string          `db:"display_name"`
	Gender            string          `db:"gender"`
	DateOfBirth       *time.Time      `db:"date_of_birth"`
	Latitude          sql.NullFloat64 `db:"latitude"`
	Longitude         sql.NullFloat64 `db:"longitude"`
	TagIDs            pq.Int64Array   `db:"tag_ids"`
	InterestIDs       pq.Int64Array   `db:"interest_ids"`
	CurrentMood       string          `db:"current_mood"`
	ResponsePace      string          `db:"response_pace"`
	DatePace          string          `db:"date_pace"`
	PreferredTimes    pq.StringArray  `db:"preferred_times"`
	HasLookingFor     bool            `db:"has_looking_for"`
	PrefGenders       pq.StringArray  `db:"pref_genders"`
	PrefMinAge        int             `db:"pref_min_age"`
	PrefMaxAge        int             `db:"pref_max_age"`
	PrefMaxDistance   float64         `db:"pref_max_distance"`
	PrefRelationships pq.StringArray  `db:"pref_relationships"`
	IsVisible         bool            `db:"is_visible"`
	UpdatedAt         time.Time       `db:"updated_at"`
}

func (row *profileRow) toFacts() *domain.ProfileFacts {
	facts := &domain.ProfileFacts{
		UserID:         row.UserID,
		DisplayName:    row.DisplayName,
		Gender:         domain.Gender(row.Gender),
		DateOfBirth:    row.DateOfBirth,
		TagIDs:         toInts(row.TagIDs),
		InterestIDs:    toInts(row.InterestIDs),
		Mood:           domain.Mood(row.CurrentMood),
		ResponsePace:   domain.ResponsePace(row.ResponsePace),
		DatePace:       domain.DatePace(row.DatePace),
		PreferredTimes: fromStrings[domain.TimePreference](row.PreferredTimes),
		IsVisible:      row.IsVisible,
		UpdatedAt:      row.UpdatedAt,
	}
	if row.Latitude.Valid && row.Longitude.Valid {
		facts.Location = &domain.Coordinates{Lat: row.Latitude.Float64, Lon: row.Longitude.Float64}
	}
	if row.HasLookingFor {
		facts.LookingFor = &domain.LookingFor{
			Genders:           fromStrings[domain.Gender](row.PrefGenders),
			MinAge:            row.PrefMinAge,
			MaxAge:            row.PrefMaxAge,
			MaxDistanceKm:     row.PrefMaxDistance,
			RelationshipTypes: fromStrings[domain.RelationshipType](row.PrefRelationships),
		}
	}
	return facts
}

func newProfileRow(facts *domain.ProfileFacts) *profileRow {
	row := &profileRow{
		UserID:         facts.UserID,
		DisplayName:    facts.DisplayName,
		Gender:         string(facts.Gender),
		DateOfBirth:    facts.DateOfBirth,
		TagIDs:         toInt64s(facts.TagIDs),
		InterestIDs:    toInt64s(facts.InterestIDs),
		CurrentMood:    string(facts.Mood),
		ResponsePace:   string(facts.ResponsePace),
		DatePace:       string(facts.DatePace),
		PreferredTimes: toStrings(facts.PreferredTimes),
		IsVisible:      facts.IsVisible,
	}
	if facts.Location != nil {
		row.Latitude = sql.NullFloat64{Float64: facts.Location.Lat, Valid: true}
		row.Longitude = sql.NullFloat64{Float64: facts.Location.Lon, Valid: true}
	}
	if lf := facts.LookingFor; lf != nil {
		row.HasLookingFor = true
		row.PrefGenders = toStrings(lf.Genders)
		row.PrefMinAge = lf.MinAge
		row.PrefMaxAge = lf.MaxAge
		row.PrefMaxDistance = lf.MaxDistanceKm
		row.PrefRelationships = toStrings(lf.RelationshipTypes)
	}
	return row
}

func toInts(in pq.Int64Array) []int {
	out := make([]int, 0, len(in))
	for _, v := range in {
		out = append(out, int(v))
	}
	return out
}

func toInt64s(in []int) pq.Int64Array {
	out := make(pq.Int64Array, 0, len(in))
	for _, v := range in {
		out = append(out, int64(v))
	}
	return out
}

func toStrings[T ~string](in []T) pq.StringArray {
	out := make(pq.StringArray, 0, len(in))
	for _, v := range in {
		out = append(out, string(v))
	}
	return out
}

func fromStrings[T ~string](in pq.StringArray) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		out = append(out, T(v))
	}
	return out
}

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID int) (*domain.ProfileFacts, error) {
	ctx, span := tracing.StartSpan(ctx, "postgres.profileRepository.GetByUserID")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(profileColumns...)
	sb.From("profiles")
	sb.Where(sb.Equal("user_id", userID))

	query, args := sb.Build()
	var row profileRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return row.toFacts(), nil
}

func (r *profileRepository) Upsert(ctx context.Context, facts *domain.ProfileFacts) (bool, error) {
	ctx, span := tracing.StartSpan(ctx, "postgres.profileRepository.Upsert")
	defer span.End()

	row := newProfileRow(facts)
	sb := sqlbuilder.PostgreSQL.NewInsertBuilder()
	sb.InsertInto("profiles")
	sb.Cols(profileColumns[:len(profileColumns)-1]...)
	sb.Values(
		row.UserID, row.DisplayName, row.Gender, row.DateOfBirth, row.Latitude, row.Longitude,
		row.TagIDs, row.InterestIDs, row.CurrentMood, row.ResponsePace, row.DatePace, row.PreferredTimes,
		row.HasLookingFor, row.PrefGenders, row.PrefMinAge, row.PrefMaxAge, row.PrefMaxDistance,
		row.PrefRelationships, row.IsVisible,
	)

	query, args := sb.Build()
	query += `
		ON CONFLICT (user_id) DO UPDATE SET
			display_name = EXCLUDED.display_name, gender = EXCLUDED.gender,
			date_of_birth = EXCLUDED.date_of_birth, latitude = EXCLUDED.latitude, longitude = EXCLUDED.longitude,
			tag_ids = EXCLUDED.tag_ids, interest_ids = EXCLUDED.interest_ids,
			current_mood = EXCLUDED.current_mood, response_pace = EXCLUDED.response_pace,
			date_pace = EXCLUDED.date_pace, preferred_times = EXCLUDED.preferred_times,
			has_looking_for = EXCLUDED.has_looking_for, pref_genders = EXCLUDED.pref_genders,
			pref_min_age = EXCLUDED.pref_min_age, pref_max_age = EXCLUDED.pref_max_age,
			pref_max_distance = EXCLUDED.pref_max_distance, pref_relationships = EXCLUDED.pref_relationships,
			is_visible = EXCLUDED.is_visible, updated_at = CURRENT_TIMESTAMP
		RETURNING updated_at, (xmax = 0) AS inserted`

	var created bool
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&facts.UpdatedAt, &created); err != nil {
		return false, err
	}
	return created, nil
}

func (r *profileRepository) ListCandidates(ctx context.Context, viewerID int, limit int) ([]*domain.ProfileFacts, error) {
	ctx, span := tracing.StartSpan(ctx, "postgres.profileRepository.ListCandidates")
	defer span.End()

	query, args := candidatesQuery(viewerID, limit)
	var rows []profileRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	out := make([]*domain.ProfileFacts, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toFacts())
	}
	return out, nil
}

func candidatesQuery(viewerID, limit int) (string, []interface{}) {
	cols := make([]string, 0, len(profileColumns))
	for _, c := range profileColumns {
		cols = append(cols, "p."+c)
	}

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(cols...)
	sb.From("profiles p")
	sb.Where(
		sb.Equal("p.is_visible", true),
		sb.NotEqual("p.user_id", viewerID),
		"NOT EXISTS (SELECT 1 FROM swipes s WHERE s.from_user_id = "+sb.Var(viewerID)+" AND s.to_user_id = p.user_id)",
		"NOT EXISTS (SELECT 1 FROM blocks b WHERE (b.blocker_id = "+sb.Var(viewerID)+" AND b.blocked_id = p.user_id)"+
			" OR (b.blocked_id = "+sb.Var(viewerID)+" AND b.blocker_id = p.user_id))",
	)
	sb.OrderBy("p.updated_at DESC", "p.user_id")
	if limit > 0 {
		sb.Limit(limit)
	}
	return sb.Build()
}
