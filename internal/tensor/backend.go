package tensor

// Backend defines the interface that compute backends implement.
// Each method is the concrete "perform" collaborator for one kind of
// operation in the symbolic graph; the linker binds scheduled graph nodes
// to these methods at compile time.
//
// Kernels never mutate their inputs: a RawTensor reachable from graph
// storage may be aliased by several storage cells at once.
//
// Shape problems that only surface on concrete values (a broadcast between
// two arbitrary-size axes, a reshape to a different element count) are
// reported as errors, not panics: they are per-call failures, not
// programmer errors.
type Backend interface {
	Name() string
	Device() Device

	// Element-wise binary operations with NumPy-style broadcasting.
	Add(a, b *RawTensor) (*RawTensor, error)
	Sub(a, b *RawTensor) (*RawTensor, error)
	Mul(a, b *RawTensor) (*RawTensor, error)
	Div(a, b *RawTensor) (*RawTensor, error)
	Pow(a, b *RawTensor) (*RawTensor, error)

	// Element-wise unary operations.
	Neg(x *RawTensor) (*RawTensor, error)
	Exp(x *RawTensor) (*RawTensor, error)
	Log(x *RawTensor) (*RawTensor, error)
	Sqrt(x *RawTensor) (*RawTensor, error)

	// Linear algebra.
	MatMul(a, b *RawTensor) (*RawTensor, error)

	// Shape operations.
	Transpose(x *RawTensor, axes []int) (*RawTensor, error)
	Reshape(x *RawTensor, newShape Shape) (*RawTensor, error)

	// Reductions.
	Sum(x *RawTensor) (*RawTensor, error)
	SumDim(x *RawTensor, dim int, keepDim bool) (*RawTensor, error)

	// Element-kind conversion.
	Cast(x *RawTensor, dtype DataType) (*RawTensor, error)
}
