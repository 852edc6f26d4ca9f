package idgen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/snowflake"
)

// Generator lo consumen los services para asignar ids a registros nuevos.
type Generator interface {
	NextID() int64
}

// Snowflake genera ids int64 ordenables por tiempo.
// Los mismos ids sirven para memoria, Postgres y SQLite (sin autoincrement por motor).
type Snowflake struct {
	node *snowflake.Node
}

func NewSnowflake(node int64) (*Snowflake, error) {
	n, err := snowflake.NewNode(node)
	if err != nil {
		return nil, fmt.Errorf("idgen: snowflake node %d: %w", node, err)
	}
	return &Snowflake{node: n}, nil
}

func (s *Snowflake) NextID() int64 {
	return s.node.Generate().Int64()
}

// Parse convierte el segmento de URL en id. Devuelve false si no es un entero positivo.
func Parse(raw string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
