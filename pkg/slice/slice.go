// Copyright (c) 2026 JoycDecor. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slice holds the generic list helpers the standard [slices] package lacks.
package slice

// Filter returns the elements of input that satisfy keep, in order.
// The result is never nil, so it encodes as [] rather than null.
func Filter[T any](input []T, keep func(T) bool) []T {
	result := make([]T, 0, len(input))
	for _, value := range input {
		if keep(value) {
			result = append(result, value)
		}
	}
	return result
}

// Map applies transform to every element of input.
func Map[T any, U any](input []T, transform func(T) U) []U {
	result := make([]U, len(input))
	for index, value := range input {
		result[index] = transform(value)
	}
	return result
}
