// Package symbolic provides a small expression kernel for building,
// differentiating, and compiling algebraic expressions.
//
// Expressions are immutable trees built from:
//
//   - [Num]: exact rational constant
//   - [Sym]: named variable
//   - [Add], [Mul], [Pow]: sums, products, and powers
//   - [Fn]: ln and exp applications
//
// Every operation returns a new expression; no method mutates its
// receiver. [Expr] exposes symbolic differentiation and capture-free
// substitution, [Bind] compiles an expression against a parameter
// binding into a plain func(float64) float64 of one free variable, and
// [Parse] reads the textual form accepted in configuration files.
//
// # Thread Safety
//
// Expressions are immutable and safe for concurrent reads. Compiled
// [Func1] closures capture their binding at compile time and are pure
// functions of their argument.
package symbolic
