// Package tensor provides the concrete multidimensional array values that
// compiled functions consume and produce.
package tensor

// DType constrains the Go element types a tensor may hold.
type DType interface {
	~float32 | ~float64 | ~int32 | ~int64
}

// DataType identifies a tensor's element kind at runtime.
type DataType int

// Supported element kinds.
const (
	Float32 DataType = iota
	Float64
	Int32
	Int64
)

// dtypeInfo carries the static properties of one element kind.
type dtypeInfo struct {
	name    string
	size    int
	isFloat bool
}

var dtypeTable = [...]dtypeInfo{
	Float32: {name: "float32", size: 4, isFloat: true},
	Float64: {name: "float64", size: 8, isFloat: true},
	Int32:   {name: "int32", size: 4},
	Int64:   {name: "int64", size: 8},
}

func (dt DataType) info() dtypeInfo {
	if dt < 0 || int(dt) >= len(dtypeTable) {
		panic("unknown data type")
	}
	return dtypeTable[dt]
}

// Size returns the width of one element in bytes.
func (dt DataType) Size() int {
	return dt.info().size
}

// IsFloat reports whether the element kind is a floating-point kind.
func (dt DataType) IsFloat() bool {
	return dt.info().isFloat
}

// String returns the element kind's name.
func (dt DataType) String() string {
	return dt.info().name
}

// inferDataType maps a generic element type onto its DataType tag.
func inferDataType[T DType](dummy T) DataType {
	switch any(dummy).(type) {
	case float32:
		return Float32
	case float64:
		return Float64
	case int32:
		return Int32
	case int64:
		return Int64
	default:
		panic("unsupported type")
	}
}
