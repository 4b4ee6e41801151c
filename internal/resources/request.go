package resources

// Request is the normalized resource mapping handed to a job-scheduling
// layer. A field is set only if the corresponding source value was
// explicitly present in the finished config; absence is meaningful and lets
// the scheduler apply its own defaults.
type Request struct {
	Nodes     *int   // Number of compute nodes
	Tasks     *int   // Number of tasks/cores
	MemMB     *int64 // Memory in megabytes
	Runtime   *int   // Wall-clock time in minutes
	Partition string // Scheduler partition name ("" = unspecified)
	Account   string // Scheduler account ("" = unspecified)
}

// IsEmpty reports whether no field was specified at all.
func (r Request) IsEmpty() bool {
	return r.Nodes == nil && r.Tasks == nil && r.MemMB == nil &&
		r.Runtime == nil && r.Partition == "" && r.Account == ""
}

// Map renders the request as a flat key/value mapping using common scheduler
// resource-declaration vocabulary. Unset fields are omitted entirely.
func (r Request) Map() map[string]interface{} {
	out := map[string]interface{}{}
	if r.Nodes != nil {
		out["nodes"] = *r.Nodes
	}
	if r.Tasks != nil {
		out["tasks"] = *r.Tasks
	}
	if r.MemMB != nil {
		out["mem_mb"] = *r.MemMB
	}
	if r.Runtime != nil {
		out["runtime"] = *r.Runtime
	}
	if r.Partition != "" {
		out["partition"] = r.Partition
	}
	if r.Account != "" {
		out["account"] = r.Account
	}
	return out
}
