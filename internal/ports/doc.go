// Package ports holds the interfaces the layers meet at. The HTTP handlers
// call ProjectService; the model data portal calls the persistence ports
// (DAOResolver, DAO, ConnectionManager) that the memory, sqlite and api
// stores implement.
package ports
