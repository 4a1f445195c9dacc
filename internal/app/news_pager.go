package app

import (
	"context"
	"log/slog"
	"sync"

	"github.com/SpaceNomad/internal/domain"
)

// DefaultPageSize is the fixed batch size requested from the articles API.
const DefaultPageSize = 10

// Direction is a navigation command for the news pager.
type Direction int

const (
	Previous Direction = iota
	Next
)

// NewsPager retrieves one page of articles at a time from a paginated news
// source and keeps the two directional controls synchronized with the
// availability signals the source reports.
//
// Each request carries a monotonically increasing sequence number; a
// response that resolves after a newer one has already been applied is
// discarded instead of overwriting the displayed state.
type NewsPager struct {
	source   domain.NewsSource
	pageSize int

	mu      sync.Mutex
	cursor  domain.PageCursor
	batch   domain.PageBatch
	nextSeq uint64
	applied uint64
}

func NewNewsPager(source domain.NewsSource, pageSize int) *NewsPager {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	cursor := domain.NewPageCursor(1, false, false)
	return &NewsPager{
		source:   source,
		pageSize: pageSize,
		cursor:   cursor,
		batch:    domain.PageBatch{Cursor: cursor},
	}
}

// Current returns the last applied batch and cursor.
func (p *NewsPager) Current() domain.PageBatch {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.batch
}

// Cursor returns the last applied cursor.
func (p *NewsPager) Cursor() domain.PageCursor {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cursor
}

// Retrieve fetches the given 1-based page: one request with limit=pageSize
// and offset=(page-1)*pageSize. On success the pager's state is replaced in
// full with the new batch, unless a newer request already resolved. On
// failure the pager's state is left untouched and the error (a
// *domain.NetworkError from the source) is returned.
func (p *NewsPager) Retrieve(ctx context.Context, pageNumber int) (domain.PageBatch, error) {
	if pageNumber < 1 {
		pageNumber = 1
	}

	p.mu.Lock()
	p.nextSeq++
	seq := p.nextSeq
	p.mu.Unlock()

	offset := (pageNumber - 1) * p.pageSize
	page, err := p.source.FetchPage(ctx, p.pageSize, offset)
	if err != nil {
		slog.Error("News fetch failed", "page", pageNumber, "offset", offset, "error", err)
		return domain.PageBatch{}, err
	}

	batch := domain.PageBatch{
		Articles: page.Articles,
		Cursor:   domain.NewPageCursor(pageNumber, page.HasPrevious, page.HasNext),
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if seq <= p.applied {
		slog.Debug("Discarding stale news response", "seq", seq, "applied", p.applied)
		return batch, nil
	}
	p.applied = seq
	p.cursor = batch.Cursor
	p.batch = batch
	return batch, nil
}

// OnNavigate moves one page in the given direction and retrieves it.
// Navigating where the last batch reported no page (or Previous from page 1)
// issues no request and returns the current state unchanged.
func (p *NewsPager) OnNavigate(ctx context.Context, dir Direction) (domain.PageBatch, error) {
	p.mu.Lock()
	cursor := p.cursor
	current := p.batch
	p.mu.Unlock()

	switch dir {
	case Previous:
		if cursor.Page <= 1 || !cursor.HasPrevious {
			return current, nil
		}
		return p.Retrieve(ctx, cursor.Page-1)
	case Next:
		if !cursor.HasNext {
			return current, nil
		}
		return p.Retrieve(ctx, cursor.Page+1)
	}
	return current, nil
}
