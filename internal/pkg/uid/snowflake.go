package uid

import "github.com/bwmarrin/snowflake"

// Snowflake generates sortable int64 identifiers suitable for primary keys.
type Snowflake struct {
	node *snowflake.Node
}

// NewSnowflake builds a generator for the given node number. Node numbers
// must be unique per running instance, within [0, 1023].
func NewSnowflake(node int64) (*Snowflake, error) {
	n, err := snowflake.NewNode(node)
	if err != nil {
		return nil, err
	}

	return &Snowflake{node: n}, nil
}

// Generate returns a new snowflake ID.
func (s *Snowflake) Generate() int64 {
	return s.node.Generate().Int64()
}
