package cluster

import (
	"encoding/json"
	"strconv"
)

// Health is the response of GET /_cluster/health.
type Health struct {
	ClusterName                 string  `json:"cluster_name"`
	Status                      string  `json:"status"`
	TimedOut                    bool    `json:"timed_out"`
	NumberOfNodes               int     `json:"number_of_nodes"`
	NumberOfDataNodes           int     `json:"number_of_data_nodes"`
	ActivePrimaryShards         int     `json:"active_primary_shards"`
	ActiveShards                int     `json:"active_shards"`
	RelocatingShards            int     `json:"relocating_shards"`
	InitializingShards          int     `json:"initializing_shards"`
	UnassignedShards            int     `json:"unassigned_shards"`
	ActiveShardsPercentAsNumber float64 `json:"active_shards_percent_as_number"`
}

// NodesStats is the response of GET /_nodes/stats.
type NodesStats struct {
	ClusterName string               `json:"cluster_name"`
	Nodes       map[string]NodeStats `json:"nodes"`
}

// NodeStats holds the per-node fields shown by the nodes command.
type NodeStats struct {
	Name  string   `json:"name"`
	Host  string   `json:"host"`
	IP    string   `json:"ip"`
	Roles []string `json:"roles"`
	OS    struct {
		CPU struct {
			Percent float64 `json:"percent"`
		} `json:"cpu"`
		Mem struct {
			UsedPercent float64 `json:"used_percent"`
		} `json:"mem"`
	} `json:"os"`
	FS struct {
		Total struct {
			TotalInBytes int64 `json:"total_in_bytes"`
			FreeInBytes  int64 `json:"free_in_bytes"`
		} `json:"total"`
	} `json:"fs"`
}

// DiskUsedPercent returns the used share of the node's filesystems, or 0 when
// the node reports no capacity.
func (n NodeStats) DiskUsedPercent() float64 {
	total := n.FS.Total.TotalInBytes
	if total <= 0 {
		return 0
	}
	return float64(total-n.FS.Total.FreeInBytes) / float64(total) * 100
}

// CatIndex is one row of GET /_cat/indices?format=json. The cat API reports
// every value as a string.
type CatIndex struct {
	Health    string `json:"health"`
	Status    string `json:"status"`
	Index     string `json:"index"`
	UUID      string `json:"uuid"`
	Primaries string `json:"pri"`
	Replicas  string `json:"rep"`
	DocsCount string `json:"docs.count"`
	StoreSize string `json:"store.size"`
}

// CatShard is one row of GET /_cat/shards?format=json.
type CatShard struct {
	Index  string `json:"index"`
	Shard  string `json:"shard"`
	PriRep string `json:"prirep"`
	State  string `json:"state"`
	Docs   string `json:"docs"`
	Store  string `json:"store"`
	IP     string `json:"ip"`
	Node   string `json:"node"`
}

// TasksResponse is the response of GET /_tasks.
type TasksResponse struct {
	Nodes map[string]TaskNode `json:"nodes"`
}

// TaskNode groups the tasks running on one node.
type TaskNode struct {
	Name  string          `json:"name"`
	Tasks map[string]Task `json:"tasks"`
}

// Task is a single running task.
type Task struct {
	Node               string `json:"node"`
	ID                 int64  `json:"id"`
	Type               string `json:"type"`
	Action             string `json:"action"`
	Description        string `json:"description"`
	StartTimeInMillis  int64  `json:"start_time_in_millis"`
	RunningTimeInNanos int64  `json:"running_time_in_nanos"`
	Cancellable        bool   `json:"cancellable"`
}

// Count returns the number of tasks across all nodes.
func (r TasksResponse) Count() int {
	n := 0
	for _, node := range r.Nodes {
		n += len(node.Tasks)
	}
	return n
}

// IndexInfo is one entry of GET /<index>, keyed by the concrete index name.
type IndexInfo struct {
	Aliases  map[string]interface{} `json:"aliases"`
	Mappings map[string]interface{} `json:"mappings"`
	Settings struct {
		Index map[string]interface{} `json:"index"`
	} `json:"settings"`
}

// Setting returns a top-level index setting as a string, or "N/A".
func (i IndexInfo) Setting(key string) string {
	v, ok := i.Settings.Index[key]
	if !ok || v == nil {
		return "N/A"
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		b, _ := json.Marshal(t)
		return string(b)
	}
}

// LifecyclePolicy returns the ILM policy name from index.lifecycle.name.
func (i IndexInfo) LifecyclePolicy() string {
	lifecycle, ok := i.Settings.Index["lifecycle"].(map[string]interface{})
	if !ok {
		return ""
	}
	name, _ := lifecycle["name"].(string)
	return name
}

// AliasNames returns the alias names in arbitrary order.
func (i IndexInfo) AliasNames() []string {
	names := make([]string, 0, len(i.Aliases))
	for name := range i.Aliases {
		names = append(names, name)
	}
	return names
}

// IndexStatsResponse is the response of GET /<index>/_stats/docs,store.
type IndexStatsResponse struct {
	Indices map[string]struct {
		Total IndexStats `json:"total"`
	} `json:"indices"`
}

// IndexStats are the doc and store totals of an index.
type IndexStats struct {
	Docs struct {
		Count   int64 `json:"count"`
		Deleted int64 `json:"deleted"`
	} `json:"docs"`
	Store struct {
		SizeInBytes int64 `json:"size_in_bytes"`
	} `json:"store"`
}

// For returns the totals of index, zero when absent.
func (r IndexStatsResponse) For(index string) IndexStats {
	return r.Indices[index].Total
}

// SimulatedIndex is the response of POST /_index_template/_simulate_index/<index>.
type SimulatedIndex struct {
	OverlappingTemplates []struct {
		Name          string   `json:"name"`
		IndexPatterns []string `json:"index_patterns"`
	} `json:"overlapping_templates"`
}

// TemplateNames returns the overlapping template names.
func (s SimulatedIndex) TemplateNames() []string {
	names := make([]string, 0, len(s.OverlappingTemplates))
	for _, t := range s.OverlappingTemplates {
		names = append(names, t.Name)
	}
	return names
}

// ForceMergeMode selects the forcemerge variant.
type ForceMergeMode string

const (
	// ForceMergeSegments merges down to a maximum number of segments.
	ForceMergeSegments ForceMergeMode = "segments"
	// ForceMergeExpunge only expunges deleted documents.
	ForceMergeExpunge ForceMergeMode = "expunge"
)

// ForceMergeOptions configures ForceMerge. MaxNumSegments is used only in
// segments mode and must be positive.
type ForceMergeOptions struct {
	Mode           ForceMergeMode
	MaxNumSegments int
}

// ForceMergeResponse is returned when forcemerge runs without waiting.
type ForceMergeResponse struct {
	Task string `json:"task"`
}

// Acknowledged is the common response of index mutations.
type Acknowledged struct {
	Acknowledged       bool `json:"acknowledged"`
	ShardsAcknowledged bool `json:"shards_acknowledged"`
}

// SnapshotRepository is one entry of GET /_snapshot, keyed by name.
type SnapshotRepository struct {
	Type     string                 `json:"type"`
	Settings map[string]interface{} `json:"settings"`
}

// SnapshotList is the response of GET /_snapshot/<repo>/_all.
type SnapshotList struct {
	Snapshots []Snapshot `json:"snapshots"`
}

// Snapshot describes one snapshot.
type Snapshot struct {
	Snapshot  string   `json:"snapshot"`
	UUID      string   `json:"uuid"`
	State     string   `json:"state"`
	Indices   []string `json:"indices"`
	StartTime string   `json:"start_time"`
	EndTime   string   `json:"end_time"`
	Stats     struct {
		Total struct {
			SizeInBytes int64 `json:"size_in_bytes"`
		} `json:"total"`
		TotalSize string `json:"total_size"`
	} `json:"stats"`
}

// ILMPolicy is one entry of GET /_ilm/policy, keyed by policy name.
type ILMPolicy struct {
	Version      int                    `json:"version"`
	ModifiedDate string                 `json:"modified_date"`
	Policy       map[string]interface{} `json:"policy"`
}

// ILMExplainResponse is the response of GET /<index>/_ilm/explain.
type ILMExplainResponse struct {
	Indices map[string]ILMIndexStatus `json:"indices"`
}

// ILMIndexStatus is the lifecycle state of one index.
type ILMIndexStatus struct {
	Index    string                 `json:"index"`
	Managed  bool                   `json:"managed"`
	Policy   string                 `json:"policy"`
	Phase    string                 `json:"phase"`
	Action   string                 `json:"action"`
	Step     string                 `json:"step"`
	StepInfo map[string]interface{} `json:"step_info"`
}

// IndexTemplateList is the response of GET /_index_template[/<name>].
type IndexTemplateList struct {
	IndexTemplates []IndexTemplateEntry `json:"index_templates"`
}

// IndexTemplateEntry pairs a template name with its body.
type IndexTemplateEntry struct {
	Name          string        `json:"name"`
	IndexTemplate IndexTemplate `json:"index_template"`
}

// IndexTemplate is a composable index template. Template holds the settings,
// mappings and aliases verbatim.
type IndexTemplate struct {
	IndexPatterns []string               `json:"index_patterns"`
	Priority      *int                   `json:"priority,omitempty"`
	ComposedOf    []string               `json:"composed_of,omitempty"`
	Version       *int                   `json:"version,omitempty"`
	Template      map[string]interface{} `json:"template,omitempty"`
	Meta          map[string]interface{} `json:"_meta,omitempty"`
	DataStream    map[string]interface{} `json:"data_stream,omitempty"`
}
