package boardsdk

import "time"

// ============================================================================
// Auth Types
// ============================================================================

// SignupRequest is the body of POST /api/auth/signup.
type SignupRequest struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// User is the public view of an account. Credentials never leave the server.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AuthResponse is returned by signup, login and me.
type AuthResponse struct {
	User User `json:"user"`
}

// ============================================================================
// Board Document
// ============================================================================

// Board is a Kanban board document. The server stores it as given, so
// clients may round-trip it unchanged.
type Board struct {
	SchemaVersion int      `json:"schemaVersion,omitempty"`
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	Columns       []Column `json:"columns"`
}

type Column struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Tasks []Task `json:"tasks"`
}

type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Type        string    `json:"type,omitempty"`
	Assignee    string    `json:"assignee,omitempty"`
	Priority    string    `json:"priority,omitempty"`
	Difficulty  string    `json:"difficulty,omitempty"`
	Sprint      string    `json:"sprint,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	Hours       *float64  `json:"hours,omitempty"`
	DueDate     string    `json:"dueDate,omitempty"`
	CreatedAt   string    `json:"createdAt,omitempty"`
	CompletedAt string    `json:"completedAt,omitempty"`
	Subtasks    []Subtask `json:"subtasks,omitempty"`
}

type Subtask struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// SubtasksRequest is the body of the subtask replacement endpoints.
type SubtasksRequest struct {
	Subtasks []Subtask `json:"subtasks"`
}

// ============================================================================
// Collaborative Boards
// ============================================================================

// CollabBoard is a board document annotated with the caller's role.
type CollabBoard struct {
	Board
	Role      string `json:"role"`
	CreatedBy string `json:"createdBy,omitempty"`
}

// InviteRequest is the body of POST /api/collab-boards/{id}/invite.
type InviteRequest struct {
	Email string `json:"email"`
}

// Invite statuses.
const (
	InviteStatusCreated     = "invite-created"
	InviteStatusMemberAdded = "member-added"
)

// InviteResponse reports the outcome of an invite. Token and ExpiresAt are
// only set when Status is InviteStatusCreated; the token is shown once.
type InviteResponse struct {
	Status    string     `json:"status"`
	Email     string     `json:"email"`
	Token     string     `json:"token,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// PendingInvite is an outstanding invite as seen by a board admin.
type PendingInvite struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	InvitedBy string    `json:"invitedBy"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// Member is a user holding a role on a collaborative board.
type Member struct {
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// AcceptInviteRequest is the body of POST /api/collab-invites/accept.
type AcceptInviteRequest struct {
	Token string `json:"token"`
}

// AcceptInviteResponse names the board the caller joined.
type AcceptInviteResponse struct {
	BoardID string `json:"boardId"`
}

// ============================================================================
// Task Types
// ============================================================================

// TaskTypeRequest is the body of POST /api/task-types. The response has the
// same shape with the trimmed name.
type TaskTypeRequest struct {
	Name string `json:"name"`
}

// ============================================================================
// Analytics
// ============================================================================

// Stats summarizes a board, optionally filtered.
type Stats struct {
	TotalTasks     int                `json:"totalTasks"`
	DoneTasks      int                `json:"doneTasks"`
	TodoTasks      int                `json:"todoTasks"`
	Completion     int                `json:"completion"`
	CompletionMode string             `json:"completionMode"`
	Overdue        int                `json:"overdue"`
	Workload       map[string]float64 `json:"workload"`
	TypeCounts     map[string]int     `json:"typeCounts"`
}

// StatsQuery selects the tasks a Stats call considers. Empty fields match
// everything.
type StatsQuery struct {
	Type        string
	Assignee    string
	Priority    string
	Difficulty  string
	Sprint      string
	Tag         string
	HasSubtasks *bool
	Query       string

	// Mode is "total" (default) or "tracked".
	Mode string
}

// ============================================================================
// Health
// ============================================================================

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks holds readiness results for dependencies (only /readyz).
type HealthChecks struct {
	Database string `json:"database"`
}
