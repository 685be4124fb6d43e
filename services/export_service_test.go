package services

import (
	"context"
	"encoding/json"
	"io"
	"testing"

	"github.com/opencourt/tournament-engine/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	key         string
	contentType string
	body        []byte
}

func (f *fakeUploader) Upload(_ context.Context, key, contentType string, reader io.Reader) (*storage.UploadResult, error) {
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	f.key = key
	f.contentType = contentType
	f.body = body
	return &storage.UploadResult{Key: key, Location: "https://results.example.com/" + key}, nil
}

func (f *fakeUploader) Delete(context.Context, string) error { return nil }

func (f *fakeUploader) GetPublicURL(key string) string { return "https://results.example.com/" + key }

func TestFinalizeCategoryPublishesPlacements(t *testing.T) {
	tournamentRepo, categoryRepo, registrationRepo, matchRepo, scoringRepo := scoringFixture()
	uploader := &fakeUploader{}
	svc := NewExportService(tournamentRepo, categoryRepo, registrationRepo, matchRepo, scoringRepo, uploader, discardLogger())

	location, err := svc.FinalizeCategory(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, "https://results.example.com/results/category-1.json", location)
	assert.Equal(t, "results/category-1.json", uploader.key)
	assert.Equal(t, "application/json", uploader.contentType)

	var export struct {
		TournamentID int    `json:"tournament_id"`
		Tournament   string `json:"tournament"`
		CategoryID   int    `json:"category_id"`
		Placements   []struct {
			Place          int   `json:"place"`
			RegistrationID int   `json:"registration_id"`
			Players        []int `json:"players"`
			Points         int   `json:"points"`
		} `json:"placements"`
	}
	require.NoError(t, json.Unmarshal(uploader.body, &export))

	assert.Equal(t, 1, export.TournamentID)
	assert.Equal(t, "Spring Open", export.Tournament)
	assert.Equal(t, 1, export.CategoryID)
	require.Len(t, export.Placements, 3)
	assert.Equal(t, 1, export.Placements[0].Place)
	assert.Equal(t, 2, export.Placements[0].RegistrationID)
	assert.Equal(t, []int{102}, export.Placements[0].Players)
	assert.Equal(t, 100, export.Placements[0].Points)
}

func TestFinalizeCategoryUnknownCategory(t *testing.T) {
	tournamentRepo, categoryRepo, registrationRepo, matchRepo, scoringRepo := scoringFixture()
	svc := NewExportService(tournamentRepo, categoryRepo, registrationRepo, matchRepo, scoringRepo, &fakeUploader{}, discardLogger())

	_, err := svc.FinalizeCategory(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}
