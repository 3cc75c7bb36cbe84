package arrays

func Map[InputType, OutputType any](input []InputType, f func(InputType) OutputType) []OutputType {
	result := make([]OutputType, len(input))
	for i, v := range input {
		result[i] = f(v)
	}
	return result
}

func Filter[ArrayType any](input []ArrayType, f func(ArrayType) bool) []ArrayType {
	result := []ArrayType{}

	for _, v := range input {
		if f(v) {
			result = append(result, v)
		}
	}
	return result
}

// Find returns the first element matching f.
func Find[ArrayType any](input []ArrayType, f func(ArrayType) bool) (ArrayType, bool) {
	for _, v := range input {
		if f(v) {
			return v, true
		}
	}

	var zero ArrayType
	return zero, false
}

// Any reports whether some element matches f.
func Any[ArrayType any](input []ArrayType, f func(ArrayType) bool) bool {
	_, found := Find(input, f)
	return found
}
