// Package fuzztests houses Go fuzz harnesses that push arbitrary bytes
// through the lexer and the compiler and check the shared invariants from
// internal/testkit. The goal is to catch panics and malformed output.
//
// Назначение: загружать байты в FileSet и прогонять их через лексер и
// compiler.Compile.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.

package fuzztests
