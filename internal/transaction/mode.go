package transaction

// Access selects read-only or read-write transactions.
type Access int

const (
	AccessReadWrite Access = iota
	AccessReadOnly
)

// Isolation is the transaction isolation level requested from storage.
type Isolation int

const (
	IsolationRepeatableRead Isolation = iota
)

// Propagation tells the storage layer what to do when a transaction is
// already active in the context.
type Propagation int

const (
	// PropagationRequired joins the active transaction or creates one.
	PropagationRequired Propagation = iota
)

// Mode describes the transaction a unit of work runs in. Call sites pick
// one of ReadOnly or ReadWrite.
type Mode struct {
	Access      Access
	Isolation   Isolation
	Propagation Propagation
}

var (
	ReadOnlyMode  = Mode{Access: AccessReadOnly, Isolation: IsolationRepeatableRead, Propagation: PropagationRequired}
	ReadWriteMode = Mode{Access: AccessReadWrite, Isolation: IsolationRepeatableRead, Propagation: PropagationRequired}
)

func (m Mode) ReadOnly() bool { return m.Access == AccessReadOnly }

func (m Mode) String() string {
	if m.ReadOnly() {
		return "read_only"
	}
	return "read_write"
}
