// Package domain defines what every layer agrees on: the sentinel errors
// the HTTP layer maps to statuses, ValidationError for field failures, and
// the todo status, category and search filter values.
// The business-object framework is in datatype, property, rules, state,
// event and model; todo and project define the sample models on it.
package domain
