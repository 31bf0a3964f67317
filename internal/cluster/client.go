package cluster

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"escli/internal/connection"
)

// Requester sends a request to the active cluster. session.Session implements it.
type Requester interface {
	Do(ctx context.Context, method, path string, body interface{}) (*connection.Result, error)
}

// Client exposes the Elasticsearch endpoints used by the shell.
type Client struct {
	req Requester
}

// NewClient creates a Client on top of req.
func NewClient(req Requester) *Client {
	return &Client{req: req}
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	return c.call(ctx, http.MethodGet, path, out)
}

func (c *Client) call(ctx context.Context, method, path string, out interface{}) error {
	res, err := c.req.Do(ctx, method, path, nil)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return res.Decode(out)
}

func (c *Client) raw(ctx context.Context, method, path string) (map[string]interface{}, error) {
	res, err := c.req.Do(ctx, method, path, nil)
	if err != nil {
		return nil, err
	}
	return res.Map()
}

func escape(segment string) string {
	return url.PathEscape(segment)
}

// Health returns the cluster health summary.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	var h Health
	if err := c.get(ctx, "/_cluster/health", &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// NodesStats returns statistics for every node.
func (c *Client) NodesStats(ctx context.Context) (*NodesStats, error) {
	var s NodesStats
	if err := c.get(ctx, "/_nodes/stats", &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// CatIndices lists all indices.
func (c *Client) CatIndices(ctx context.Context) ([]CatIndex, error) {
	var rows []CatIndex
	if err := c.get(ctx, "/_cat/indices?format=json&v", &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// CatShards lists all shards.
func (c *Client) CatShards(ctx context.Context) ([]CatShard, error) {
	var rows []CatShard
	if err := c.get(ctx, "/_cat/shards?format=json&v", &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Tasks lists the running tasks grouped by node.
func (c *Client) Tasks(ctx context.Context) (*TasksResponse, error) {
	var t TasksResponse
	if err := c.get(ctx, "/_tasks", &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// ClusterSettings returns the persistent and transient cluster settings.
func (c *Client) ClusterSettings(ctx context.Context) (map[string]interface{}, error) {
	return c.raw(ctx, http.MethodGet, "/_cluster/settings")
}

// GetIndex returns the aliases, mappings and settings of index, keyed by the
// concrete index name.
func (c *Client) GetIndex(ctx context.Context, index string) (map[string]IndexInfo, error) {
	out := map[string]IndexInfo{}
	if err := c.get(ctx, "/"+escape(index), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// IndexStats returns the doc and store statistics of index.
func (c *Client) IndexStats(ctx context.Context, index string) (*IndexStatsResponse, error) {
	var s IndexStatsResponse
	if err := c.get(ctx, "/"+escape(index)+"/_stats/docs,store", &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// SimulateIndex resolves which index templates would apply to index.
func (c *Client) SimulateIndex(ctx context.Context, index string) (*SimulatedIndex, error) {
	var s SimulatedIndex
	if err := c.call(ctx, http.MethodPost, "/_index_template/_simulate_index/"+escape(index), &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// IndexSettings returns the settings of index.
func (c *Client) IndexSettings(ctx context.Context, index string) (map[string]interface{}, error) {
	return c.raw(ctx, http.MethodGet, "/"+escape(index)+"/_settings")
}

// DeleteIndex deletes index.
func (c *Client) DeleteIndex(ctx context.Context, index string) error {
	return c.call(ctx, http.MethodDelete, "/"+escape(index), nil)
}

// OpenIndex opens a closed index.
func (c *Client) OpenIndex(ctx context.Context, index string) error {
	return c.call(ctx, http.MethodPost, "/"+escape(index)+"/_open", nil)
}

// CloseIndex closes index.
func (c *Client) CloseIndex(ctx context.Context, index string) error {
	return c.call(ctx, http.MethodPost, "/"+escape(index)+"/_close", nil)
}

// ForceMergePath builds the forcemerge request path. It rejects an unknown mode
// and a non-positive segment count.
func ForceMergePath(index string, opts ForceMergeOptions) (string, error) {
	query := url.Values{}
	switch opts.Mode {
	case ForceMergeSegments:
		if opts.MaxNumSegments < 1 {
			return "", fmt.Errorf("number of segments must be a positive integer, got %d", opts.MaxNumSegments)
		}
		query.Set("max_num_segments", strconv.Itoa(opts.MaxNumSegments))
	case ForceMergeExpunge:
		query.Set("only_expunge_deletes", "true")
	default:
		return "", fmt.Errorf("unknown forcemerge type %q (available: %s, %s)", opts.Mode, ForceMergeSegments, ForceMergeExpunge)
	}
	query.Set("wait_for_completion", "false")
	return "/" + escape(index) + "/_forcemerge?" + query.Encode(), nil
}

// ForceMerge starts a forcemerge on index without waiting for it to finish.
// The returned task id is empty when the cluster did not report one.
func (c *Client) ForceMerge(ctx context.Context, index string, opts ForceMergeOptions) (string, error) {
	path, err := ForceMergePath(index, opts)
	if err != nil {
		return "", err
	}
	var resp ForceMergeResponse
	if err := c.call(ctx, http.MethodPost, path, &resp); err != nil {
		return "", err
	}
	return resp.Task, nil
}

// SnapshotRepositories returns the registered snapshot repositories, keyed by name.
func (c *Client) SnapshotRepositories(ctx context.Context) (map[string]SnapshotRepository, error) {
	out := map[string]SnapshotRepository{}
	if err := c.get(ctx, "/_snapshot", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Snapshots lists every snapshot in repo.
func (c *Client) Snapshots(ctx context.Context, repo string) (*SnapshotList, error) {
	var s SnapshotList
	if err := c.get(ctx, "/_snapshot/"+escape(repo)+"/_all", &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// ILMPolicies returns all lifecycle policies, keyed by name.
func (c *Client) ILMPolicies(ctx context.Context) (map[string]ILMPolicy, error) {
	out := map[string]ILMPolicy{}
	if err := c.get(ctx, "/_ilm/policy", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ILMPolicy returns one lifecycle policy. A policy missing from an otherwise
// successful response is reported as not found.
func (c *Client) ILMPolicy(ctx context.Context, name string) (*ILMPolicy, error) {
	out := map[string]ILMPolicy{}
	if err := c.get(ctx, "/_ilm/policy/"+escape(name), &out); err != nil {
		return nil, err
	}
	p, ok := out[name]
	if !ok {
		return nil, fmt.Errorf("lifecycle policy %q not found", name)
	}
	return &p, nil
}

// ILMExplain returns the lifecycle state of index.
func (c *Client) ILMExplain(ctx context.Context, index string) (*ILMIndexStatus, error) {
	var resp ILMExplainResponse
	if err := c.get(ctx, "/"+escape(index)+"/_ilm/explain", &resp); err != nil {
		return nil, err
	}
	status, ok := resp.Indices[index]
	if !ok {
		if len(resp.Indices) != 1 {
			return nil, fmt.Errorf("no lifecycle information for index %q", index)
		}
		for _, only := range resp.Indices {
			status = only
		}
	}
	return &status, nil
}

// IndexTemplates lists all composable index templates.
func (c *Client) IndexTemplates(ctx context.Context) ([]IndexTemplateEntry, error) {
	var list IndexTemplateList
	if err := c.get(ctx, "/_index_template", &list); err != nil {
		return nil, err
	}
	return list.IndexTemplates, nil
}

// IndexTemplate returns one composable index template.
func (c *Client) IndexTemplate(ctx context.Context, name string) (*IndexTemplateEntry, error) {
	var list IndexTemplateList
	if err := c.get(ctx, "/_index_template/"+escape(name), &list); err != nil {
		return nil, err
	}
	if len(list.IndexTemplates) == 0 {
		return nil, fmt.Errorf("index template %q not found", name)
	}
	return &list.IndexTemplates[0], nil
}
