// Package types defines the core data structures shared across strata:
// layers, nodes, edges, normalized input records and the query result
// contract exposed to transports.
//
// A Node belongs to exactly one layer and carries the fields of its
// NodeType; unused fields stay at their zero value and are omitted from
// serialized attribute maps. All structures in this package are plain
// values with no behavior beyond validation and attribute projection,
// so they can cross package boundaries freely.
package types
