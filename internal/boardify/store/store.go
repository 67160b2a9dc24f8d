package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/boardify/internal/boardify/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this. It exposes sub-repositories so a transaction scoped Store
// hands out the same repos bound to the transaction, and so nested
// transactions are refused rather than silently started.
type Store interface {
	Users() Users
	Sessions() Sessions
	Boards() Boards
	CollabBoards() CollabBoards
	Members() Members
	Invites() Invites
	TaskTypes() TaskTypes

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. Inside fn only
	// the repos of tx may be used.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// CreateUser inserts a new user. Returns ErrAlreadyExists when the
	// email is taken.
	CreateUser(ctx context.Context, u domain.User) error

	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail matches the normalized email.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
}

type Sessions interface {
	CreateSession(ctx context.Context, s domain.Session) error

	// GetActiveSession returns the unexpired session with the given token
	// hash joined with its user.
	GetActiveSession(ctx context.Context, tokenHash string, now time.Time) (domain.Session, domain.User, error)

	// DeleteSessionByTokenHash removes one session. Missing rows are not an error.
	DeleteSessionByTokenHash(ctx context.Context, tokenHash string) error

	// DeleteExpiredSessions is housekeeping and returns the number removed.
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

// Boards stores board documents. Personal operations are scoped to the owner
// and never see collaborative boards; collaborative operations only see
// boards with a collaborative_boards row.
type Boards interface {
	// CreateBoard inserts a board row. Returns ErrAlreadyExists when any
	// board already uses the id.
	CreateBoard(ctx context.Context, rec domain.BoardRecord) error

	GetPersonalBoard(ctx context.Context, id, ownerID string) (domain.BoardRecord, error)
	ListPersonalBoards(ctx context.Context, ownerID string) ([]domain.BoardRecord, error)
	UpdatePersonalBoard(ctx context.Context, b domain.Board, ownerID string, at time.Time) error
	DeletePersonalBoard(ctx context.Context, id, ownerID string) error

	GetCollabBoard(ctx context.Context, id string) (domain.BoardRecord, error)
	UpdateCollabBoard(ctx context.Context, b domain.Board, at time.Time) error

	// DeleteCollabBoard cascades to the collaborative row, memberships and
	// invites.
	DeleteCollabBoard(ctx context.Context, id string) error
}

type CollabBoards interface {
	CreateCollabBoard(ctx context.Context, cb domain.CollaborativeBoard) error
	GetCollabBoard(ctx context.Context, boardID string) (domain.CollaborativeBoard, error)

	// ListBoardsForMember returns every collaborative board userID holds a
	// role on, oldest first.
	ListBoardsForMember(ctx context.Context, userID string) ([]domain.MemberBoard, error)
}

type Members interface {
	// AddMember inserts a membership and does nothing if one exists.
	AddMember(ctx context.Context, m domain.Member) error

	// UpsertMember inserts a membership or overwrites the role of an
	// existing one.
	UpsertMember(ctx context.Context, m domain.Member) error

	// GetRole returns ErrNotFound when the user has no membership.
	GetRole(ctx context.Context, boardID, userID string) (domain.BoardRole, error)

	ListMembers(ctx context.Context, boardID string) ([]domain.Member, error)
}

type Invites interface {
	CreateInvite(ctx context.Context, inv domain.Invite) error

	// GetActiveInviteByTokenHash returns an unaccepted, unexpired invite.
	GetActiveInviteByTokenHash(ctx context.Context, hash string, now time.Time) (domain.Invite, error)

	ListActiveInvitesByEmail(ctx context.Context, email string, now time.Time) ([]domain.Invite, error)
	ListActiveInvitesByBoard(ctx context.Context, boardID string, now time.Time) ([]domain.Invite, error)

	// MarkInviteAccepted consumes the invite. It only succeeds while the
	// invite is unaccepted and returns ErrNotFound otherwise, so concurrent
	// redemptions of one invite yield a single winner.
	MarkInviteAccepted(ctx context.Context, inviteID, userID string, at time.Time) error

	// DeleteExpiredInvites removes expired invites that were never accepted.
	DeleteExpiredInvites(ctx context.Context, now time.Time) (int64, error)
}

type TaskTypes interface {
	ListTaskTypes(ctx context.Context) ([]domain.TaskType, error)

	// CreateTaskType does nothing if the name exists.
	CreateTaskType(ctx context.Context, tt domain.TaskType) error
}
