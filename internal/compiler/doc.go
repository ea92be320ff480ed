// Package compiler is the single-pass translator: a recursive-descent parser
// that emits accumulator-machine instructions while it recognizes the
// grammar. There is no syntax tree; every value-producing rule returns the
// symbol table slot that holds its value.
//
//	Program             := StatementList EndCode
//	StatementList       := Statement StatementList | ε
//	Statement           := AssignmentStatement | PrintlnStatement
//	AssignmentStatement := ID '=' Expr ';'
//	PrintlnStatement    := 'println' '(' Expr ')' ';'
//	Expr                := Term TermList
//	TermList            := '+' Term TermList | ε
//	Term                := Factor FactorList
//	FactorList          := '*' Factor FactorList | ε
//	Factor              := UNSIGNED | '+' UNSIGNED | '-' UNSIGNED | ID | '(' Expr ')'
package compiler
