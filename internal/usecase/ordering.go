package usecase

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"ChannelSnapshot/internal/domain"
)

// SortPlaylists returns a copy of playlists ordered by their position in ranks.
// Playlists missing from ranks are rejected when strict is set; otherwise they
// are placed after every ranked playlist, keeping listing order, and their
// ids are returned so the caller can report them.
func SortPlaylists(playlists []domain.Playlist, ranks domain.RankList, strict bool) ([]domain.Playlist, []string, error) {
	positions := ranks.Positions()
	fallbackRank := len(ranks)

	var unranked []string
	for _, pl := range playlists {
		if _, ok := positions[pl.ID]; !ok {
			unranked = append(unranked, pl.ID)
		}
	}

	if strict && len(unranked) > 0 {
		return nil, unranked, &domain.ConfigurationError{
			Field:  "ordering.mappingPath",
			Reason: fmt.Sprintf("playlists missing from rank list: %s", strings.Join(unranked, ", ")),
		}
	}

	rankOf := func(pl domain.Playlist) int {
		if pos, ok := positions[pl.ID]; ok {
			return pos
		}
		return fallbackRank
	}

	sorted := slices.Clone(playlists)
	slices.SortStableFunc(sorted, func(a, b domain.Playlist) int {
		return cmp.Compare(rankOf(a), rankOf(b))
	})
	return sorted, unranked, nil
}
