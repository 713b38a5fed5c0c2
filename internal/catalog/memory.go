// AniLife - Anime Catalog and Recommendation Service
// Copyright 2026 cce459
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cce459/AniLifeClone

package catalog

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cce459/AniLifeClone/internal/metrics"
	"github.com/cce459/AniLifeClone/internal/models"
	"github.com/cce459/AniLifeClone/internal/validation"
)

// MemoryStore is an in-process Storage guarded by a single RWMutex.
// Writers take the exclusive lock for the whole operation, so referential
// checks and inserts are atomic with respect to each other.
type MemoryStore struct {
	mu sync.RWMutex

	titles     map[string]models.Title
	titleOrder []string

	episodes        map[string]models.Episode
	episodesByTitle map[string][]string
	episodeNumbers  map[string]map[int]struct{}

	progress      map[progressKey][]models.WatchProgress
	progressCount int

	now    func() time.Time
	newID  func() string
	logger zerolog.Logger
}

type progressKey struct {
	viewerID string
	titleID  string
}

// NewMemoryStore creates an empty store.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewMemoryStore(logger zerolog.Logger) *MemoryStore {
	return &MemoryStore{
		titles:          make(map[string]models.Title),
		episodes:        make(map[string]models.Episode),
		episodesByTitle: make(map[string][]string),
		episodeNumbers:  make(map[string]map[int]struct{}),
		progress:        make(map[progressKey][]models.WatchProgress),
		now:             time.Now,
		newID:           func() string { return uuid.New().String() },
		logger:          logger.With().Str("component", "catalog").Logger(),
	}
}

// CreateTitle implements Storage.
func (s *MemoryStore) CreateTitle(input models.TitleInput) (models.Title, error) {
	return s.createTitle("", input)
}

// CreateTitleWithID is CreateTitle with a caller-chosen ID. A blank or
// taken ID fails with a ValidationError.
func (s *MemoryStore) CreateTitleWithID(id string, input models.TitleInput) (models.Title, error) {
	if strings.TrimSpace(id) == "" {
		return models.Title{}, NewValidationError("id", "id must not be blank")
	}
	return s.createTitle(id, input)
}

func (s *MemoryStore) createTitle(id string, input models.TitleInput) (models.Title, error) {
	if verr := validation.ValidateStruct(&input); verr != nil {
		return models.Title{}, FromValidation(verr)
	}

	title := models.Title{
		Name:               input.Name,
		Synopsis:           input.Synopsis,
		Genre:              input.Genre,
		Rating:             input.Rating,
		EpisodeCount:       input.EpisodeCount,
		Status:             input.Status,
		Year:               input.Year,
		ThumbnailURL:       input.ThumbnailURL,
		HeroImageURL:       input.HeroImageURL,
		IsRegionalOriginal: models.BoolValue(input.IsRegionalOriginal),
		IsFeatured:         models.BoolValue(input.IsFeatured),
		IsLatest:           models.BoolValue(input.IsLatest),
	}

	s.mu.Lock()
	if id == "" {
		id = s.uniqueID(func(id string) bool { _, ok := s.titles[id]; return ok })
	} else if _, taken := s.titles[id]; taken {
		s.mu.Unlock()
		return models.Title{}, NewValidationError("id", "id is already in use")
	}
	title.ID = id
	title.CreatedAt = s.now()
	s.titles[title.ID] = title
	s.titleOrder = append(s.titleOrder, title.ID)
	titles, episodes := len(s.titles), len(s.episodes)
	s.mu.Unlock()

	metrics.SetCatalogSize(titles, episodes)
	s.logger.Debug().Str("title_id", title.ID).Str("name", title.Name).Msg("title created")
	return title, nil
}

// CreateEpisode implements Storage.
func (s *MemoryStore) CreateEpisode(input models.EpisodeInput) (models.Episode, error) {
	return s.createEpisode("", input)
}

// CreateEpisodeWithID is CreateEpisode with a caller-chosen ID. A blank or
// taken ID fails with a ValidationError.
func (s *MemoryStore) CreateEpisodeWithID(id string, input models.EpisodeInput) (models.Episode, error) {
	if strings.TrimSpace(id) == "" {
		return models.Episode{}, NewValidationError("id", "id must not be blank")
	}
	return s.createEpisode(id, input)
}

func (s *MemoryStore) createEpisode(id string, input models.EpisodeInput) (models.Episode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.titles[input.TitleID]; !ok {
		return models.Episode{}, NewNotFoundError("title", input.TitleID)
	}
	if verr := validation.ValidateStruct(&input); verr != nil {
		return models.Episode{}, FromValidation(verr)
	}
	if input.Number <= 0 {
		return models.Episode{}, NewValidationError("episodeNumber", "episodeNumber must be a positive integer")
	}
	if _, dup := s.episodeNumbers[input.TitleID][input.Number]; dup {
		return models.Episode{}, NewValidationError("episodeNumber", "episodeNumber duplicates an existing episode of this title")
	}

	if id == "" {
		id = s.uniqueID(func(id string) bool { _, ok := s.episodes[id]; return ok })
	} else if _, taken := s.episodes[id]; taken {
		return models.Episode{}, NewValidationError("id", "id is already in use")
	}

	episode := models.Episode{
		ID:        id,
		TitleID:   input.TitleID,
		Number:    input.Number,
		Name:      input.Name,
		VideoURL:  input.VideoURL,
		Duration:  input.Duration,
		CreatedAt: s.now(),
	}
	s.episodes[episode.ID] = episode
	s.episodesByTitle[episode.TitleID] = append(s.episodesByTitle[episode.TitleID], episode.ID)
	if s.episodeNumbers[episode.TitleID] == nil {
		s.episodeNumbers[episode.TitleID] = make(map[int]struct{})
	}
	s.episodeNumbers[episode.TitleID][episode.Number] = struct{}{}

	metrics.SetCatalogSize(len(s.titles), len(s.episodes))
	return episode, nil
}

// GetTitle implements Storage.
func (s *MemoryStore) GetTitle(id string) (models.Title, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.titles[id]
	return t, ok
}

// ListTitles implements Storage.
func (s *MemoryStore) ListTitles() []models.Title {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Title, 0, len(s.titleOrder))
	for _, id := range s.titleOrder {
		out = append(out, s.titles[id])
	}
	return out
}

// GetEpisodesOf implements Storage.
func (s *MemoryStore) GetEpisodesOf(titleID string) []models.Episode {
	s.mu.RLock()
	ids := s.episodesByTitle[titleID]
	out := make([]models.Episode, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.episodes[id])
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

// GetEpisode implements Storage.
func (s *MemoryStore) GetEpisode(id string) (models.Episode, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.episodes[id]
	return e, ok
}

// AppendProgress implements Storage.
func (s *MemoryStore) AppendProgress(record models.WatchProgress) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.titles[record.TitleID]; !ok {
		return NewNotFoundError("title", record.TitleID)
	}
	episode, ok := s.episodes[record.EpisodeID]
	if !ok || episode.TitleID != record.TitleID {
		return NewNotFoundError("episode", record.EpisodeID)
	}

	key := progressKey{viewerID: record.ViewerID, titleID: record.TitleID}
	s.progress[key] = append(s.progress[key], record)
	s.progressCount++
	return nil
}

// ProgressFor implements Storage.
func (s *MemoryStore) ProgressFor(viewerID, titleID string) []models.WatchProgress {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := s.progress[progressKey{viewerID: viewerID, titleID: titleID}]
	out := make([]models.WatchProgress, len(records))
	copy(out, records)
	return out
}

// Stats implements Storage.
func (s *MemoryStore) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Stats{Titles: len(s.titles), Episodes: len(s.episodes), Progress: s.progressCount}
}

// uniqueID draws IDs until taken reports false. Must be called with mu held.
func (s *MemoryStore) uniqueID(taken func(string) bool) string {
	for {
		if id := s.newID(); id != "" && !taken(id) {
			return id
		}
	}
}

// FromValidation converts a validator failure into a *ValidationError
// naming the first failing field.
func FromValidation(verr *validation.RequestValidationError) *ValidationError {
	field := ""
	if errs := verr.Errors(); len(errs) > 0 {
		field = errs[0].Field()
	}
	return &ValidationError{Field: field, Message: verr.Error()}
}

var _ Storage = (*MemoryStore)(nil)
