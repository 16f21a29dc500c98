package core

// Entity is a unique identifier for a context, action or binding record
type Entity uint64

// Invalid is the zero entity, never assigned by a world
const Invalid Entity = 0
