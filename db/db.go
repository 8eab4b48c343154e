// Package db persists computed report snapshots to a sqlite file, so past
// runs can be compared. The live pipelines never read from here; every report
// is computed from fresh API data.
package db

import (
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/avelis/earshot/data"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// DB represents our sqlite3 database file.
type DB struct{ *gorm.DB }

//go:embed schema.sql
var schema string

// Open returns a connection to a migrated sqlite3 database file on disk,
// creating the file and running migrations if necessary.
func Open(filename string) (*DB, error) {
	gdb, err := gorm.Open(sqlite.Open(filename), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("error opening db file at '%s': %w", filename, err)
	}

	db := &DB{gdb}

	if err := db.Exec(schema).Error; err != nil {
		return nil, fmt.Errorf("error migrating db at '%s': %w", filename, err)
	}

	return db, nil
}

func (db *DB) Close() error {
	pool, err := db.DB.DB()
	if err != nil {
		return err
	}
	return pool.Close()
}

// A Snapshot is one saved run of the insights pipeline for one artist.
type Snapshot struct {
	ID              int64
	ArtistSpotifyID string
	TakenAt         time.Time

	RankInTopArtists *int
	TotalListensMS   int64 `gorm:"column:total_listens_ms"`
	ListenTrend      string
	TopTimeOfDay     string
	FavoriteTrackID  string
}

// A SimilarArtist is one row of a snapshot's similar-artists ranking.
type SimilarArtist struct {
	SnapshotID      int64
	Position        int
	ArtistSpotifyID string
	Score           float64
	MatchReasons    string
}

// InsertArtist records an artist's catalog snapshot, doing nothing if the
// artist is already present.
func (db *DB) InsertArtist(artist *data.Artist) error {
	if err := db.
		Clauses(clause.OnConflict{DoNothing: true}).
		Table("artists").
		Create(map[string]interface{}{
			"spotify_id": artist.SpotifyID,
			"name":       artist.Name,
			"image_url":  artist.ImageURL,
			"followers":  artist.Followers,
			"popularity": artist.Popularity,
		}).
		Error; err != nil {
		return fmt.Errorf("error inserting artist '%s': %w", artist.Name, err)
	}
	return nil
}

// InsertSnapshot saves one computed report: the target artist, its listen
// data, and the ranked similar-artists list. Returns the new snapshot id.
func (db *DB) InsertSnapshot(artist *data.Artist, listen data.ListenData, similar []data.Candidate) (int64, error) {
	if err := db.InsertArtist(artist); err != nil {
		return 0, err
	}

	snapshot := Snapshot{
		ArtistSpotifyID:  artist.SpotifyID,
		TakenAt:          time.Now(),
		RankInTopArtists: listen.RankInTopArtists,
		TotalListensMS:   listen.TotalListensMS,
		ListenTrend:      string(listen.ListenTrend),
		TopTimeOfDay:     listen.TopTimeOfDay,
		FavoriteTrackID:  listen.FavoriteTrackID,
	}
	if err := db.Create(&snapshot).Error; err != nil {
		return 0, fmt.Errorf("error inserting snapshot for '%s': %w", artist.Name, err)
	}

	for i, candidate := range similar {
		candidate := candidate
		if err := db.InsertArtist(&candidate.Artist); err != nil {
			return 0, err
		}
		if err := db.Create(&SimilarArtist{
			SnapshotID:      snapshot.ID,
			Position:        i + 1,
			ArtistSpotifyID: candidate.Artist.SpotifyID,
			Score:           candidate.Score,
			MatchReasons:    strings.Join(candidate.MatchReasons, "; "),
		}).Error; err != nil {
			return 0, fmt.Errorf("error inserting similar artist '%s': %w", candidate.Artist.Name, err)
		}
	}

	return snapshot.ID, nil
}

// A SnapshotSummary is one row of the snapshot listing.
type SnapshotSummary struct {
	ID             int64
	ArtistName     string
	TakenAt        time.Time
	ListenTrend    string
	TotalListensMS int64 `gorm:"column:total_listens_ms"`
	SimilarCount   int64
}

// ListSnapshots returns saved snapshots, newest first.
func (db *DB) ListSnapshots() ([]SnapshotSummary, error) {
	var summaries []SnapshotSummary
	if err := db.
		Table("snapshots").
		Select(
			"snapshots.id as id",
			"artists.name as artist_name",
			"snapshots.taken_at as taken_at",
			"snapshots.listen_trend as listen_trend",
			"snapshots.total_listens_ms as total_listens_ms",
			"(select count(*) from similar_artists where similar_artists.snapshot_id = snapshots.id) as similar_count",
		).
		Joins("join artists on artists.spotify_id = snapshots.artist_spotify_id").
		Order("snapshots.taken_at desc").
		Scan(&summaries).
		Error; err != nil {
		return nil, fmt.Errorf("error listing snapshots: %w", err)
	}
	return summaries, nil
}
