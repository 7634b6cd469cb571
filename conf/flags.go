package conf

import (
	"time"

	"github.com/spf13/pflag"
)

// BindFlag defines a flag named name on fs that writes to ptr, using the
// current value as the default. Unsupported pointer types are skipped and
// reported by a false result. An existing flag with the same name is kept.
func BindFlag(fs *pflag.FlagSet, name string, ptr any, usage string) bool {
	if fs.Lookup(name) != nil {
		return false
	}

	switch p := ptr.(type) {
	case *string:
		fs.StringVar(p, name, *p, usage)
	case *bool:
		fs.BoolVar(p, name, *p, usage)
	case *int:
		fs.IntVar(p, name, *p, usage)
	case *int8:
		fs.Int8Var(p, name, *p, usage)
	case *int16:
		fs.Int16Var(p, name, *p, usage)
	case *int32:
		fs.Int32Var(p, name, *p, usage)
	case *int64:
		fs.Int64Var(p, name, *p, usage)
	case *uint:
		fs.UintVar(p, name, *p, usage)
	case *uint8:
		fs.Uint8Var(p, name, *p, usage)
	case *uint16:
		fs.Uint16Var(p, name, *p, usage)
	case *uint32:
		fs.Uint32Var(p, name, *p, usage)
	case *uint64:
		fs.Uint64Var(p, name, *p, usage)
	case *float32:
		fs.Float32Var(p, name, *p, usage)
	case *float64:
		fs.Float64Var(p, name, *p, usage)
	case *time.Duration:
		fs.DurationVar(p, name, *p, usage)
	case *[]string:
		fs.StringSliceVar(p, name, *p, usage)
	case *[]int:
		fs.IntSliceVar(p, name, *p, usage)
	case *map[string]string:
		fs.StringToStringVar(p, name, *p, usage)
	default:
		return false
	}

	return true
}
