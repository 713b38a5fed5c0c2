// AniLife - Anime Catalog and Recommendation Service
// Copyright 2026 cce459
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cce459/AniLifeClone

package catalog

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/cce459/AniLifeClone/internal/models"
)

const (
	// SeedEpisodeLimit caps the sample episodes created per seeded title.
	SeedEpisodeLimit = 6

	// SeedEpisodeDuration is the duration given to every seeded episode.
	SeedEpisodeDuration = "24:00"
)

const unsplash = "https://images.unsplash.com/"

func ptr[T any](v T) *T { return &v }

// SeedTitles returns the built-in fixture catalog in insertion order:
// featured titles first, then regional originals, then latest releases.
func SeedTitles() []models.TitleInput {
	return []models.TitleInput{
		{
			Name:         "진격의 거인 파이널 시즌",
			Synopsis:     "인류의 운명을 건 최후의 전투가 시작된다. 엘런과 동료들의 마지막 이야기.",
			Genre:        "액션",
			Rating:       "9.8",
			EpisodeCount: 24,
			Status:       models.StatusCompleted,
			Year:         2023,
			ThumbnailURL: unsplash + "photo-1578662996442-48f60103fc96?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=500",
			HeroImageURL: ptr(unsplash + "photo-1578662996442-48f60103fc96?ixlib=rb-4.0.3&auto=format&fit=crop&w=1920&h=1080"),
			IsFeatured:   ptr(true),
			IsLatest:     ptr(true),
		},
		{
			Name:         "귀멸의 칼날 도공마을편",
			Synopsis:     "탄지로와 네즈코의 새로운 모험. 도공마을에서 펼쳐지는 치열한 전투.",
			Genre:        "액션",
			Rating:       "9.5",
			EpisodeCount: 11,
			Status:       models.StatusCompleted,
			Year:         2023,
			ThumbnailURL: unsplash + "photo-1612198188060-c7c2a3b66eae?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=500",
			IsFeatured:   ptr(true),
			IsLatest:     ptr(true),
		},
		{
			Name:         "주술회전 시부야 사변편",
			Synopsis:     "시부야를 무대로 펼쳐지는 저주사들과 저주의 전면전쟁.",
			Genre:        "액션",
			Rating:       "9.3",
			EpisodeCount: 23,
			Status:       models.StatusOngoing,
			Year:         2023,
			ThumbnailURL: unsplash + "photo-1606107557195-0e29a4b5b4aa?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=500",
			IsFeatured:   ptr(true),
			IsLatest:     ptr(true),
		},
		{
			Name:         "원피스 와노쿠니편",
			Synopsis:     "루피와 밀짚모자 일당의 와노쿠니에서의 대모험이 시작된다.",
			Genre:        "모험",
			Rating:       "9.7",
			EpisodeCount: 120,
			Status:       models.StatusOngoing,
			Year:         2023,
			ThumbnailURL: unsplash + "photo-1613376023733-0a73315d9b06?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=500",
			IsFeatured:   ptr(true),
		},
		{
			Name:               "신의 탑",
			Synopsis:           "탑을 오르는 소년의 모험을 그린 한국 웹툰 원작 애니메이션. 독특한 세계관과 매력적인 캐릭터들이 펼치는 대서사시.",
			Genre:              "액션",
			Rating:             "8.9",
			EpisodeCount:       13,
			Status:             models.StatusCompleted,
			Year:               2020,
			ThumbnailURL:       unsplash + "photo-1493225457124-a3eb161ffa5f?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=500",
			IsRegionalOriginal: ptr(true),
		},
		{
			Name:               "고스트메신저",
			Synopsis:           "죽은 자들의 메시지를 전하는 특별한 능력을 가진 소년의 이야기. 한국적 정서가 담긴 감동적인 스토리.",
			Genre:              "드라마",
			Rating:             "8.7",
			EpisodeCount:       6,
			Status:             models.StatusCompleted,
			Year:               2021,
			ThumbnailURL:       unsplash + "photo-1611162616475-46b635cb6868?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=500",
			IsRegionalOriginal: ptr(true),
		},
		{
			Name:         "체인소 맨",
			Synopsis:     "악마와 계약한 소년의 잔혹한 이야기",
			Genre:        "액션",
			Rating:       "9.1",
			EpisodeCount: 12,
			Status:       models.StatusCompleted,
			Year:         2023,
			ThumbnailURL: unsplash + "photo-1578662996442-48f60103fc96?ixlib=rb-4.0.3&auto=format&fit=crop&w=300&h=400",
			IsLatest:     ptr(true),
		},
		{
			Name:         "스파이 패밀리",
			Synopsis:     "가짜 가족의 따뜻한 이야기",
			Genre:        "코미디",
			Rating:       "9.4",
			EpisodeCount: 25,
			Status:       models.StatusOngoing,
			Year:         2023,
			ThumbnailURL: unsplash + "photo-1606107557195-0e29a4b5b4aa?ixlib=rb-4.0.3&auto=format&fit=crop&w=300&h=400",
			IsLatest:     ptr(true),
		},
		{
			Name:         "나의 히어로 아카데미아",
			Synopsis:     "히어로를 꿈꾸는 소년의 성장기",
			Genre:        "액션",
			Rating:       "8.8",
			EpisodeCount: 138,
			Status:       models.StatusOngoing,
			Year:         2023,
			ThumbnailURL: unsplash + "photo-1612198188060-c7c2a3b66eae?ixlib=rb-4.0.3&auto=format&fit=crop&w=300&h=400",
			IsLatest:     ptr(true),
		},
		{
			Name:         "이세계 아이돌",
			Synopsis:     "다른 세계에서 아이돌이 된 소녀의 이야기",
			Genre:        "판타지",
			Rating:       "8.5",
			EpisodeCount: 12,
			Status:       models.StatusCompleted,
			Year:         2023,
			ThumbnailURL: unsplash + "photo-1613376023733-0a73315d9b06?ixlib=rb-4.0.3&auto=format&fit=crop&w=300&h=400",
			IsLatest:     ptr(true),
		},
	}
}

// seedNamespace scopes the name-derived IDs of fixture rows.
var seedNamespace = uuid.MustParse("6f1c2d9e-4b7a-5c3e-9a41-2e8d7f0b5c13")

// SeedTitleID is the ID Seed assigns to the fixture title called name.
// It is stable across processes, so preferences persisted against a seeded
// catalog still resolve after a restart.
func SeedTitleID(name string) string {
	return uuid.NewSHA1(seedNamespace, []byte(name)).String()
}

// SeedEpisodeID is the ID Seed assigns to episode n of the given title.
func SeedEpisodeID(titleID string, n int) string {
	return uuid.NewSHA1(seedNamespace, []byte(fmt.Sprintf("%s/%d", titleID, n))).String()
}

// fixedIDStorage is implemented by stores that accept caller-chosen IDs.
type fixedIDStorage interface {
	CreateTitleWithID(id string, input models.TitleInput) (models.Title, error)
	CreateEpisodeWithID(id string, input models.EpisodeInput) (models.Episode, error)
}

// Seed inserts the fixture catalog into store. Each title gets episodes
// 1..min(EpisodeCount, SeedEpisodeLimit) named "{n}화". Stores that accept
// caller-chosen IDs get SeedTitleID and SeedEpisodeID; others assign their own.
func Seed(store Storage) error {
	createTitle := store.CreateTitle
	createEpisode := store.CreateEpisode
	if fixed, ok := store.(fixedIDStorage); ok {
		createTitle = func(input models.TitleInput) (models.Title, error) {
			return fixed.CreateTitleWithID(SeedTitleID(input.Name), input)
		}
		createEpisode = func(input models.EpisodeInput) (models.Episode, error) {
			return fixed.CreateEpisodeWithID(SeedEpisodeID(input.TitleID, input.Number), input)
		}
	}

	for _, input := range SeedTitles() {
		title, err := createTitle(input)
		if err != nil {
			return fmt.Errorf("seed title %q: %w", input.Name, err)
		}
		for n := 1; n <= min(title.EpisodeCount, SeedEpisodeLimit); n++ {
			_, err := createEpisode(models.EpisodeInput{
				TitleID:  title.ID,
				Number:   n,
				Name:     fmt.Sprintf("%d화", n),
				Duration: SeedEpisodeDuration,
			})
			if err != nil {
				return fmt.Errorf("seed episode %d of %q: %w", n, title.Name, err)
			}
		}
	}
	return nil
}
