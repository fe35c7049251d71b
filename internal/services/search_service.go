package services

import (
	"context"
)

// SearchResult is one cross-entity hit, tagged with the entity type so
// the client can route it.
type SearchResult struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// SearchService fans a text query out over every content entity and
// folds the hits into a single paginated result set.
type SearchService struct {
	artworks    *ArtworkService
	artists     *ArtistService
	events      *EventService
	expositions *ExpositionService
	timelines   *TimelineService
}

func NewSearchService(artworks *ArtworkService, artists *ArtistService, events *EventService, expositions *ExpositionService, timelines *TimelineService) *SearchService {
	return &SearchService{
		artworks:    artworks,
		artists:     artists,
		events:      events,
		expositions: expositions,
		timelines:   timelines,
	}
}

// Search queries all five entities with the same page window. Each
// entity contributes up to limit hits; the combined envelope counts
// every match across entities.
func (s *SearchService) Search(ctx context.Context, query string, page, limit int) ([]SearchResult, Pagination, error) {
	page, limit = normalizePage(page, limit)

	var results []SearchResult
	var items int64
	maxPages := 1

	artworks, p, err := s.artworks.Search(ctx, query, page, limit)
	if err != nil {
		return nil, Pagination{}, err
	}
	for i := range artworks {
		results = append(results, SearchResult{Type: "artwork", Data: artworks[i]})
	}
	items += p.Items
	if p.Pages > maxPages {
		maxPages = p.Pages
	}

	artists, p, err := s.artists.Search(ctx, query, page, limit)
	if err != nil {
		return nil, Pagination{}, err
	}
	for i := range artists {
		results = append(results, SearchResult{Type: "artist", Data: artists[i]})
	}
	items += p.Items
	if p.Pages > maxPages {
		maxPages = p.Pages
	}

	events, p, err := s.events.Search(ctx, query, page, limit)
	if err != nil {
		return nil, Pagination{}, err
	}
	for i := range events {
		results = append(results, SearchResult{Type: "event", Data: events[i]})
	}
	items += p.Items
	if p.Pages > maxPages {
		maxPages = p.Pages
	}

	expositions, p, err := s.expositions.Search(ctx, query, page, limit)
	if err != nil {
		return nil, Pagination{}, err
	}
	for i := range expositions {
		results = append(results, SearchResult{Type: "exposition", Data: expositions[i]})
	}
	items += p.Items
	if p.Pages > maxPages {
		maxPages = p.Pages
	}

	timelines, p, err := s.timelines.Search(ctx, query, page, limit)
	if err != nil {
		return nil, Pagination{}, err
	}
	for i := range timelines {
		results = append(results, SearchResult{Type: "timeline", Data: timelines[i]})
	}
	items += p.Items
	if p.Pages > maxPages {
		maxPages = p.Pages
	}

	envelope := paginate(page, limit, items)
	envelope.Pages = maxPages
	envelope.Last = maxPages
	if page >= maxPages {
		envelope.Next = nil
	}
	return results, envelope, nil
}
