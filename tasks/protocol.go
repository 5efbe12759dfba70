package tasks

// CapabilityCommand and CapabilityQuery are the two capability names this
// service registers, ported from the original's TaskCommand/TaskQuery
// router declarations. They are already snake_case — the exact string the
// registry stores the capability under (spec 4.I: name=snake_case(C)) —
// so that taskd (which registers them) and centralctl (which resolves
// them) share one source of truth instead of each re-deriving the name.
const (
	CapabilityCommand = "task_command"
	CapabilityQuery   = "task_query"
)

// -- TaskCommand request variants --

// CreateRequest asks the store to create a task named Name.
type CreateRequest struct {
	ID   uint32 `json:"rqs_id"`
	Name string `json:"name"`
}

func (CreateRequest) EnvelopeMessage() string { return "Create" }

// CompleteRequest asks the store to mark TaskID complete.
type CompleteRequest struct {
	ID     uint32 `json:"rqs_id"`
	TaskID string `json:"task_id"`
}

func (CompleteRequest) EnvelopeMessage() string { return "Complete" }

// -- TaskQuery request variants --

// GetRequest asks the store for every task matching Query.
type GetRequest struct {
	ID    uint32 `json:"rqs_id"`
	Query Query  `json:"query"`
}

func (GetRequest) EnvelopeMessage() string { return "Get" }

// GetOneRequest asks the store for the first task matching Query, if any.
type GetOneRequest struct {
	ID    uint32 `json:"rqs_id"`
	Query Query  `json:"query"`
}

func (GetOneRequest) EnvelopeMessage() string { return "GetOne" }

// -- shared response variants --

// SuccessResponse acknowledges Create/Complete.
type SuccessResponse struct {
	ID uint32 `json:"rqs_id"`
}

func (r *SuccessResponse) EnvelopeMessage() string { return "Success" }
func (r *SuccessResponse) RqsID() uint32           { return r.ID }

// ErrorResponse carries a handler-level failure (spec 7 HandlerError):
// Complete against a missing or already-complete task renders this.
type ErrorResponse struct {
	ID          uint32 `json:"rqs_id"`
	Description string `json:"description"`
}

func (r *ErrorResponse) EnvelopeMessage() string { return "Error" }
func (r *ErrorResponse) RqsID() uint32           { return r.ID }

// TaskResponse carries the single task GetOne found.
type TaskResponse struct {
	ID   uint32 `json:"rqs_id"`
	Task Task   `json:"task"`
}

func (r *TaskResponse) EnvelopeMessage() string { return "Task" }
func (r *TaskResponse) RqsID() uint32           { return r.ID }

// NotFoundResponse is GetOne's empty case.
type NotFoundResponse struct {
	ID uint32 `json:"rqs_id"`
}

func (r *NotFoundResponse) EnvelopeMessage() string { return "NotFound" }
func (r *NotFoundResponse) RqsID() uint32           { return r.ID }

// TasksResponse carries every task Get found.
type TasksResponse struct {
	ID    uint32 `json:"rqs_id"`
	Tasks []Task `json:"tasks"`
}

func (r *TasksResponse) EnvelopeMessage() string { return "Tasks" }
func (r *TasksResponse) RqsID() uint32           { return r.ID }
