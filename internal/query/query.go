// Package query filters, sorts, and paginates table snapshots. It is pure:
// callers hand in the rows they read and get back a page plus the total of
// the filtered set.
package query

import (
	"sort"
	"strings"

	"talentflow/internal/models"
)

const (
	SortByOrder   = "order"
	SortByCreated = "createdAt"
)

type Page struct {
	Page     int
	PageSize int
}

type Pagination struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
	Total    int `json:"total"`
}

type Result[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

type JobFilter struct {
	Search string
	Status models.JobStatus
	Tags   []string
	Sort   string
}

type CandidateFilter struct {
	Search string
	Stage  models.Stage
	JobID  string
}

// Jobs filters by substring on title or slug, exact status, and
// all-tags-present, then sorts by order rank (default) or createdAt
// descending.
func Jobs(snapshot []models.Job, filter JobFilter, page Page) Result[models.Job] {
	search := strings.ToLower(filter.Search)

	var filtered []models.Job
	for _, job := range snapshot {
		if search != "" &&
			!strings.Contains(strings.ToLower(job.Title), search) &&
			!strings.Contains(job.Slug, search) {
			continue
		}
		if filter.Status != "" && job.Status != filter.Status {
			continue
		}
		if !hasAllTags(job.Tags, filter.Tags) {
			continue
		}
		filtered = append(filtered, job)
	}

	if filter.Sort == SortByCreated {
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
		})
	} else {
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Order < filtered[j].Order
		})
	}

	return paginate(filtered, page)
}

// Candidates filters by substring on name or email, exact stage, and exact
// job, then sorts by stage rank with most recent appliedAt first within a
// stage.
func Candidates(snapshot []models.Candidate, filter CandidateFilter, page Page) Result[models.Candidate] {
	search := strings.ToLower(filter.Search)

	var filtered []models.Candidate
	for _, c := range snapshot {
		if search != "" &&
			!strings.Contains(strings.ToLower(c.Name), search) &&
			!strings.Contains(strings.ToLower(c.Email), search) {
			continue
		}
		if filter.Stage != "" && c.Stage != filter.Stage {
			continue
		}
		if filter.JobID != "" && c.JobID != filter.JobID {
			continue
		}
		filtered = append(filtered, c)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		if ri, rj := filtered[i].Stage.Rank(), filtered[j].Stage.Rank(); ri != rj {
			return ri < rj
		}
		return filtered[i].AppliedAt.After(filtered[j].AppliedAt)
	})

	return paginate(filtered, page)
}

func hasAllTags(have, want []string) bool {
	for _, tag := range want {
		found := false
		for _, t := range have {
			if t == tag {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// paginate slices [(page-1)*pageSize, page*pageSize) clamped to the data.
// Total always reflects the filtered set; an out-of-range page yields an
// empty data slice, not an error.
func paginate[T any](items []T, page Page) Result[T] {
	if page.Page <= 0 {
		page.Page = 1
	}
	if page.PageSize <= 0 {
		page.PageSize = 10
	}

	total := len(items)
	start := (page.Page - 1) * page.PageSize
	end := start + page.PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	data := make([]T, end-start)
	copy(data, items[start:end])

	return Result[T]{
		Data: data,
		Pagination: Pagination{
			Page:     page.Page,
			PageSize: page.PageSize,
			Total:    total,
		},
	}
}
