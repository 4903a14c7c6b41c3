// Package mocks contains mocks for the interfaces in the model package.
//
// Each mock has a MockXXX function field for each method; calling a
// method whose field is nil panics, which is what we want in tests.
package mocks
