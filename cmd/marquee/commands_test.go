package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/marquee/internal/domain"
)

func TestParseTarget(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		want     domain.RatingTarget
		wantRest []string
		wantErr  error
	}{
		{
			name:     "movie",
			args:     []string{"movie", "550", "8.5"},
			want:     domain.RatingTarget{Kind: domain.MediaTypeMovie, ID: 550},
			wantRest: []string{"8.5"},
		},
		{
			name:     "case insensitive kind",
			args:     []string{"TV", "1399"},
			want:     domain.RatingTarget{Kind: domain.MediaTypeTV, ID: 1399},
			wantRest: []string{},
		},
		{
			name:     "episode",
			args:     []string{"episode", "1399", "1", "2", "9"},
			want:     domain.RatingTarget{Kind: domain.MediaTypeEpisode, ID: 1399, SeasonNumber: 1, EpisodeNumber: 2},
			wantRest: []string{"9"},
		},
		{name: "episode missing numbers", args: []string{"episode", "1399", "1"}, wantErr: errUsage},
		{name: "person cannot be rated", args: []string{"person", "1"}, wantErr: domain.ErrUnknownVariant},
		{name: "unknown kind", args: []string{"collection", "1"}, wantErr: domain.ErrUnknownVariant},
		{name: "too short", args: []string{"movie"}, wantErr: errUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, rest, err := parseTarget(tt.args)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantRest, rest)
		})
	}
}

func TestParseID(t *testing.T) {
	id, err := parseID("603")
	require.NoError(t, err)
	assert.Equal(t, 603, id)

	for _, bad := range []string{"", "abc", "0", "-4"} {
		_, err := parseID(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseSortFlag(t *testing.T) {
	order, err := parseSortFlag("")
	require.NoError(t, err)
	assert.Nil(t, order)

	order, err = parseSortFlag("vote_average.desc")
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, domain.RatingDesc, *order)

	_, err = parseSortFlag("popularity.desc")
	assert.ErrorIs(t, err, domain.ErrUnknownSortOrder)
}

func TestDescribeTarget(t *testing.T) {
	assert.Equal(t, "tv 1399 S01E02", describeTarget(domain.RatingTarget{Kind: domain.MediaTypeEpisode, ID: 1399, SeasonNumber: 1, EpisodeNumber: 2}))
	assert.Equal(t, "Movie 550", describeTarget(domain.RatingTarget{Kind: domain.MediaTypeMovie, ID: 550}))
}
