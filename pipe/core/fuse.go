package core

// Predicate decides whether a value stays in the stream.
type Predicate[T any] func(T) bool

// ToFlatMapper converts the Mapper into a FlatMapper that produces
// exactly one output Result per input.
func (m Mapper[IN, OUT]) ToFlatMapper() FlatMapper[IN, OUT] {
	return func(res Result[IN]) ([]Result[OUT], error) {
		out, err := m(res)
		if err != nil {
			return nil, err
		}
		return []Result[OUT]{out}, nil
	}
}

// ToFlatMapper converts the Predicate into a FlatMapper that produces one
// output for values that pass and none for values that do not.
// Error and sentinel Results pass through untouched.
func (p Predicate[T]) ToFlatMapper() FlatMapper[T, T] {
	return func(res Result[T]) ([]Result[T], error) {
		if !res.IsValue() {
			return []Result[T]{res}, nil
		}
		if p(res.Value()) {
			return []Result[T]{res}, nil
		}
		return nil, nil
	}
}

// Fuse combines two Mappers into one, removing the intermediate channel
// and goroutine a two-stage pipeline would need. An error from the first
// mapper reaches the second as an error Result, which it forwards.
func Fuse[IN, MID, OUT any](first Mapper[IN, MID], second Mapper[MID, OUT]) Mapper[IN, OUT] {
	return func(res Result[IN]) (Result[OUT], error) {
		mid, err := first(res)
		if err != nil {
			mid = Err[MID](err)
		}
		return second(mid)
	}
}

// FuseFlat combines two FlatMappers into one. Each intermediate Result is
// fed to the second FlatMapper and the outputs are concatenated in order.
func FuseFlat[IN, MID, OUT any](first FlatMapper[IN, MID], second FlatMapper[MID, OUT]) FlatMapper[IN, OUT] {
	return func(res Result[IN]) ([]Result[OUT], error) {
		mids, err := first(res)
		if err != nil {
			mids = []Result[MID]{Err[MID](err)}
		}

		var outs []Result[OUT]
		for _, mid := range mids {
			mapped, err := second(mid)
			if err != nil {
				outs = append(outs, Err[OUT](err))
				continue
			}
			outs = append(outs, mapped...)
		}
		return outs, nil
	}
}
