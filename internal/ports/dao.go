package ports

import "context"

// DTO is the persistence shape of a model: property name to value.
// Child data nests under the child property name as a DTO or a []DTO.
type DTO = map[string]any

// Connection is an open connection or transaction handed out by a
// ConnectionManager. Its concrete type belongs to the adapter; DAOs of the
// same adapter assert it back.
type Connection interface {
	// DataSource returns the name of the data source the connection belongs to.
	DataSource() string
}

// DAO is the data access object of one model type.
// Implemented by persistence adapters; called by the data portal.
type DAO interface {
	// Fetch loads data. method selects a named query ("" for the default);
	// filter is the caller's criteria. Object models expect a DTO,
	// collections a []DTO.
	// Returns domain.ErrNotFound when an object fetch matches nothing.
	Fetch(ctx context.Context, conn Connection, method string, filter any) (any, error)

	// Insert stores a new row and returns the stored values, including
	// generated keys and timestamps.
	Insert(ctx context.Context, conn Connection, dto DTO) (DTO, error)

	// Update stores changed values and returns the stored row.
	Update(ctx context.Context, conn Connection, dto DTO) (DTO, error)

	// Remove deletes the rows matching filter, usually the key properties.
	Remove(ctx context.Context, conn Connection, filter any) error
}

// Creator is implemented by DAOs that supply initial values for new models.
// The data portal skips the DAO during create when it is absent.
type Creator interface {
	Create(ctx context.Context, conn Connection) (DTO, error)
}

// Executor is implemented by DAOs backing command models.
type Executor interface {
	// Execute runs the named command with the command's input values and
	// returns its output values.
	Execute(ctx context.Context, conn Connection, method string, dto DTO) (DTO, error)
}

// MethodRunner is the generic dispatch entry point. When a DAO implements
// it, named fetch methods are routed through RunMethod instead of Fetch.
type MethodRunner interface {
	RunMethod(ctx context.Context, conn Connection, name string, args ...any) (any, error)
}

// DAOResolver looks up the DAO of a model by model name.
type DAOResolver interface {
	// DAO returns the DAO registered for modelName.
	// Returns domain.ErrNotFound when none is registered.
	DAO(modelName string) (DAO, error)
}

// ConnectionManager hands out connections and transactions per data source.
// Every call may block; every call takes the context of the running action.
type ConnectionManager interface {
	OpenConnection(ctx context.Context, dataSource string) (Connection, error)
	CloseConnection(ctx context.Context, dataSource string, conn Connection) error
	BeginTransaction(ctx context.Context, dataSource string) (Connection, error)
	CommitTransaction(ctx context.Context, dataSource string, conn Connection) error
	RollbackTransaction(ctx context.Context, dataSource string, conn Connection) error
}
