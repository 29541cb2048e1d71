package recalc

import "github.com/bwmarrin/snowflake"

type Config struct {
	BatchSize int
}

func (c Config) withDefaults() Config {
	if c.BatchSize <= 0 {
		c.BatchSize = 200
	}
	return c
}

func toID(v int64) snowflake.ID {
	return snowflake.ID(v)
}
