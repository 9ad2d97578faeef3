package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/and161185/atns-client/internal/gateway"
	"github.com/and161185/atns-client/internal/model"
)

// CreateJob posts a job as the logged-in user.
func (c *Client) CreateJob(ctx context.Context, j model.JobRequest) (model.Job, error) {
	var out model.Job
	if err := c.gw.DoJSON(ctx, http.MethodPost, "/jobs", j, &out); err != nil {
		return out, fmt.Errorf("create job: %w", err)
	}
	return out, nil
}

// Job fetches one posting.
func (c *Client) Job(ctx context.Context, jobID int64) (model.Job, error) {
	var out model.Job
	if err := c.gw.DoJSON(ctx, http.MethodGet, "/jobs/"+id(jobID), nil, &out); err != nil {
		return out, fmt.Errorf("job %d: %w", jobID, err)
	}
	return out, nil
}

// UpdateJob applies a partial update.
func (c *Client) UpdateJob(ctx context.Context, jobID int64, u model.JobUpdate) (model.Job, error) {
	var out model.Job
	if err := c.gw.DoJSON(ctx, http.MethodPut, "/jobs/"+id(jobID), u, &out); err != nil {
		return out, fmt.Errorf("update job %d: %w", jobID, err)
	}
	return out, nil
}

// DeleteJob removes a posting owned by the logged-in user.
func (c *Client) DeleteJob(ctx context.Context, jobID int64) error {
	if err := c.gw.DoJSON(ctx, http.MethodDelete, "/jobs/"+id(jobID), nil, nil); err != nil {
		return fmt.Errorf("delete job %d: %w", jobID, err)
	}
	return nil
}

// Jobs pages through every posting.
func (c *Client) Jobs(ctx context.Context, page, size int) (model.Page[model.Job], error) {
	return c.jobPage(ctx, "/jobs", paging(page, size))
}

// ActiveJobs pages through postings that have not expired.
func (c *Client) ActiveJobs(ctx context.Context, page, size int) (model.Page[model.Job], error) {
	return c.jobPage(ctx, "/jobs/active", paging(page, size))
}

// MyJobs pages through postings made by the logged-in user.
func (c *Client) MyJobs(ctx context.Context, page, size int) (model.Page[model.Job], error) {
	return c.jobPage(ctx, "/jobs/my-jobs", paging(page, size))
}

// JobsByCompany pages through one company's postings.
func (c *Client) JobsByCompany(ctx context.Context, company string, page, size int) (model.Page[model.Job], error) {
	return c.jobPage(ctx, "/jobs/company/"+url.PathEscape(company), paging(page, size))
}

// JobsByLocation pages through postings in one location.
func (c *Client) JobsByLocation(ctx context.Context, location string, page, size int) (model.Page[model.Job], error) {
	return c.jobPage(ctx, "/jobs/location/"+url.PathEscape(location), paging(page, size))
}

// SearchJobs filters postings. Empty filters are omitted.
func (c *Client) SearchJobs(ctx context.Context, q model.JobSearch) (model.Page[model.Job], error) {
	opts := append(paging(q.Page, q.Size),
		gateway.WithQuery("title", q.Title),
		gateway.WithQuery("company", q.Company),
		gateway.WithQuery("location", q.Location),
	)
	for _, s := range q.Skills {
		opts = append(opts, gateway.WithQuery("skills", s))
	}
	return c.jobPage(ctx, "/jobs/search", opts)
}

// JobRecommendations ranks postings against the logged-in user's skills.
func (c *Client) JobRecommendations(ctx context.Context, limit int) ([]model.RecommendedJob, error) {
	var out []model.RecommendedJob
	if err := c.getList(ctx, "/jobs/recommendations", &out, limitOpt(limit)); err != nil {
		return nil, fmt.Errorf("job recommendations: %w", err)
	}
	return out, nil
}

func (c *Client) jobPage(ctx context.Context, path string, opts []gateway.CallOption) (model.Page[model.Job], error) {
	var out model.Page[model.Job]
	if err := c.getList(ctx, path, &out, opts...); err != nil {
		return out, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}
