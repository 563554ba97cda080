package libdiff

import (
	"fmt"

	"github.com/fatih/color"
)

type Colors struct {
	Insert func(string, ...any) string
	Delete func(string, ...any) string
	Equal  func(string, ...any) string
}

func NewColors() *Colors {
	return &Colors{
		Insert: color.GreenString,
		Delete: color.RedString,
		Equal:  fmt.Sprintf,
	}
}

func (c *Colors) insert() func(string, ...any) string {
	if c == nil || c.Insert == nil {
		return fmt.Sprintf
	}
	return c.Insert
}

func (c *Colors) delete() func(string, ...any) string {
	if c == nil || c.Delete == nil {
		return fmt.Sprintf
	}
	return c.Delete
}

func (c *Colors) equal() func(string, ...any) string {
	if c == nil || c.Equal == nil {
		return fmt.Sprintf
	}
	return c.Equal
}
