// Copyright (c) 2025 Niema Moshiri and The Zaparoo Project.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of bonsai.
//
// bonsai is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// bonsai is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with bonsai.  If not, see <https://www.gnu.org/licenses/>.

// Package shiftes5 declares the ECMAScript 5 AST schema used by the
// Shift AST format, as a bonsai schema.Schema value.
package shiftes5

import "github.com/ZaparooProject/bonsai/schema"

var variableDeclarationKind = schema.Enum{Variants: []string{"var", "let", "const"}}
var propertyNameKind = schema.Enum{Variants: []string{"identifier", "string", "number"}}

var assignmentOperator = schema.Enum{Variants: []string{
	"=", "+=", "-=", "*=", "/=", "%=", "<<=", ">>=", ">>>=", "|=", "^=", "&=",
}}

var binaryOperator = schema.Enum{Variants: []string{
	"==", "!=", "===", "!==", "<", "<=", ">", ">=", "in", "instanceof", "<<",
	">>", ">>>", "+", "-", "*", "/", "%", ",", "||", "&&", "|", "^", "&",
}}

var prefixOperator = schema.Enum{Variants: []string{
	"+", "-", "!", "~", "typeof", "void", "delete", "++", "--",
}}

var postfixOperator = schema.Enum{Variants: []string{"++", "--"}}

// Schema is the ES5 AST, ported node-for-node from the Shift AST spec.
// SwitchStatementWithDefault is kept as a first-class node type even
// though no pretty-printer in the wild emits it directly; it is how the
// reference parser represents a switch with a non-trailing default case.
var Schema = &schema.Schema{
	RootType: "Script",
	Order: []string{
		"Directive", "Statement", "Expression", "FunctionBody",
		"PrimaryExpression", "LiteralExpression", "PropertyName",
		"ObjectProperty", "AccessorProperty",
		"Identifier", "Block", "CatchClause", "Script", "SwitchCase",
		"SwitchDefault", "VariableDeclarator", "VariableDeclaration",
		"FunctionDeclaration", "FunctionExpression",
		"ObjectExpression", "Getter", "Setter", "DataProperty",
		"LiteralBooleanExpression", "LiteralInfinityExpression",
		"LiteralNullExpression", "LiteralNumericExpression",
		"LiteralRegExpExpression", "LiteralStringExpression",
		"ArrayExpression", "AssignmentExpression", "BinaryExpression",
		"CallExpression", "ComputedMemberExpression",
		"ConditionalExpression", "IdentifierExpression", "NewExpression",
		"PostfixExpression", "PrefixExpression", "StaticMemberExpression",
		"ThisExpression",
		"BlockStatement", "BreakStatement", "ContinueStatement",
		"DebuggerStatement", "DoWhileStatement", "EmptyStatement",
		"ExpressionStatement", "ForInStatement", "ForStatement",
		"IfStatement", "LabeledStatement", "ReturnStatement",
		"SwitchStatement", "SwitchStatementWithDefault", "ThrowStatement",
		"TryCatchStatement", "TryFinallyStatement",
		"VariableDeclarationStatement", "WhileStatement", "WithStatement",
		"UnknownDirective", "UseStrictDirective",
	},
	Types: map[string]*schema.Type{
		"Directive":         {Name: "Directive"},
		"Statement":         {Name: "Statement"},
		"Expression":        {Name: "Expression"},
		"PrimaryExpression": {Name: "PrimaryExpression", Parent: "Expression"},
		"LiteralExpression": {Name: "LiteralExpression", Parent: "PrimaryExpression"},

		"FunctionBody": {
			Name: "FunctionBody",
			Fields: []schema.Field{
				{Name: "directives", Kind: schema.List{Of: schema.Ref{Dest: []string{"Directive"}}}},
				{Name: "statements", Kind: schema.List{Of: schema.Ref{Dest: []string{"Statement"}}}},
			},
		},
		"PropertyName": {
			Name: "PropertyName",
			Fields: []schema.Field{
				{Name: "kind", Kind: propertyNameKind},
				{Name: "value", Kind: schema.Scalar{Of: schema.String}},
			},
		},
		"ObjectProperty": {
			Name: "ObjectProperty",
			Fields: []schema.Field{
				{Name: "name", Kind: schema.Ref{Dest: []string{"PropertyName"}}},
			},
		},
		"AccessorProperty": {
			Name: "AccessorProperty", Parent: "ObjectProperty",
			Fields: []schema.Field{
				{Name: "body", Kind: schema.Ref{Dest: []string{"FunctionBody"}}},
			},
		},

		"Identifier": {
			Name: "Identifier",
			Fields: []schema.Field{
				{Name: "name", Kind: schema.Scalar{Of: schema.String}},
			},
		},
		"Block": {
			Name: "Block",
			Fields: []schema.Field{
				{Name: "statements", Kind: schema.List{Of: schema.Ref{Dest: []string{"Statement"}}}},
			},
		},
		"CatchClause": {
			Name: "CatchClause",
			Fields: []schema.Field{
				{Name: "binding", Kind: schema.Ref{Dest: []string{"Identifier"}}},
				{Name: "body", Kind: schema.Ref{Dest: []string{"Block"}}},
			},
		},
		"Script": {
			Name: "Script",
			Fields: []schema.Field{
				{Name: "body", Kind: schema.Ref{Dest: []string{"FunctionBody"}}},
			},
		},
		"SwitchCase": {
			Name: "SwitchCase",
			Fields: []schema.Field{
				{Name: "test", Kind: schema.Ref{Dest: []string{"Expression"}}},
				{Name: "consequent", Kind: schema.List{Of: schema.Ref{Dest: []string{"Statement"}}}},
			},
		},
		"SwitchDefault": {
			Name: "SwitchDefault",
			Fields: []schema.Field{
				{Name: "consequent", Kind: schema.List{Of: schema.Ref{Dest: []string{"Statement"}}}},
			},
		},
		"VariableDeclarator": {
			Name: "VariableDeclarator",
			Fields: []schema.Field{
				{Name: "binding", Kind: schema.Ref{Dest: []string{"Identifier"}}},
				{Name: "init", Kind: schema.Optional("Expression")},
			},
		},
		"VariableDeclaration": {
			Name: "VariableDeclaration",
			Fields: []schema.Field{
				{Name: "kind", Kind: variableDeclarationKind},
				{Name: "declarators", Kind: schema.List{Of: schema.Ref{Dest: []string{"VariableDeclarator"}}, NonEmpty: true}},
			},
		},

		// function is a mixin, not a concrete node: both declaration and
		// expression forms share its "parameters" field alongside their own
		// Statement/PrimaryExpression parent.
		"function": {
			Name: "function",
			Fields: []schema.Field{
				{Name: "parameters", Kind: schema.List{Of: schema.Ref{Dest: []string{"Identifier"}}}},
			},
		},
		"FunctionDeclaration": {
			Name: "FunctionDeclaration", Parent: "Statement", Mixin: "function",
			Fields: []schema.Field{
				{Name: "name", Kind: schema.Ref{Dest: []string{"Identifier"}}},
				{Name: "body", Kind: schema.Ref{Dest: []string{"FunctionBody"}}},
			},
		},
		"FunctionExpression": {
			Name: "FunctionExpression", Parent: "PrimaryExpression", Mixin: "function",
			Fields: []schema.Field{
				{Name: "name", Kind: schema.Optional("Identifier")},
				{Name: "body", Kind: schema.Ref{Dest: []string{"FunctionBody"}}},
			},
		},

		"ObjectExpression": {
			Name: "ObjectExpression", Parent: "PrimaryExpression",
			Fields: []schema.Field{
				{Name: "properties", Kind: schema.List{Of: schema.Ref{Dest: []string{"ObjectProperty"}}}},
			},
		},
		"Getter": {Name: "Getter", Parent: "AccessorProperty"},
		"Setter": {
			Name: "Setter", Parent: "AccessorProperty",
			Fields: []schema.Field{
				{Name: "parameter", Kind: schema.Ref{Dest: []string{"Identifier"}}},
			},
		},
		"DataProperty": {
			Name: "DataProperty", Parent: "ObjectProperty",
			Fields: []schema.Field{
				{Name: "expression", Kind: schema.Ref{Dest: []string{"Expression"}}},
			},
		},

		"LiteralBooleanExpression": {
			Name: "LiteralBooleanExpression", Parent: "LiteralExpression",
			Fields: []schema.Field{
				{Name: "value", Kind: schema.Scalar{Of: schema.Boolean}},
			},
		},
		"LiteralInfinityExpression": {Name: "LiteralInfinityExpression", Parent: "LiteralExpression"},
		"LiteralNullExpression":     {Name: "LiteralNullExpression", Parent: "LiteralExpression"},
		"LiteralNumericExpression": {
			Name: "LiteralNumericExpression", Parent: "LiteralExpression",
			Fields: []schema.Field{
				{Name: "value", Kind: schema.Scalar{Of: schema.Number}},
			},
		},
		"LiteralRegExpExpression": {
			Name: "LiteralRegExpExpression", Parent: "LiteralExpression",
			Fields: []schema.Field{
				{Name: "value", Kind: schema.Scalar{Of: schema.String}},
			},
		},
		"LiteralStringExpression": {
			Name: "LiteralStringExpression", Parent: "LiteralExpression",
			Fields: []schema.Field{
				{Name: "value", Kind: schema.Scalar{Of: schema.String}},
			},
		},

		"ArrayExpression": {
			Name: "ArrayExpression", Parent: "PrimaryExpression",
			Fields: []schema.Field{
				{Name: "elements", Kind: schema.List{Of: schema.Optional("Expression")}},
			},
		},
		"AssignmentExpression": {
			Name: "AssignmentExpression", Parent: "Expression",
			Fields: []schema.Field{
				{Name: "operator", Kind: assignmentOperator},
				{Name: "binding", Kind: schema.Ref{Dest: []string{"Expression"}}},
				{Name: "expression", Kind: schema.Ref{Dest: []string{"Expression"}}},
			},
		},
		"BinaryExpression": {
			Name: "BinaryExpression", Parent: "Expression",
			Fields: []schema.Field{
				{Name: "operator", Kind: binaryOperator},
				{Name: "left", Kind: schema.Ref{Dest: []string{"Expression"}}},
				{Name: "right", Kind: schema.Ref{Dest: []string{"Expression"}}},
			},
		},
		"CallExpression": {
			Name: "CallExpression", Parent: "Expression",
			Fields: []schema.Field{
				{Name: "callee", Kind: schema.Ref{Dest: []string{"Expression"}}},
				{Name: "arguments", Kind: schema.List{Of: schema.Ref{Dest: []string{"Expression"}}}},
			},
		},
		"ComputedMemberExpression": {
			Name: "ComputedMemberExpression", Parent: "Expression",
			Fields: []schema.Field{
				{Name: "object", Kind: schema.Ref{Dest: []string{"Expression"}}},
				{Name: "expression", Kind: schema.Ref{Dest: []string{"Expression"}}},
			},
		},
		"ConditionalExpression": {
			Name: "ConditionalExpression", Parent: "Expression",
			Fields: []schema.Field{
				{Name: "test", Kind: schema.Ref{Dest: []string{"Expression"}}},
				{Name: "consequent", Kind: schema.Ref{Dest: []string{"Expression"}}},
				{Name: "alternate", Kind: schema.Ref{Dest: []string{"Expression"}}},
			},
		},
		"IdentifierExpression": {
			Name: "IdentifierExpression", Parent: "PrimaryExpression",
			Fields: []schema.Field{
				{Name: "identifier", Kind: schema.Ref{Dest: []string{"Identifier"}}},
			},
		},
		"NewExpression": {
			Name: "NewExpression", Parent: "Expression",
			Fields: []schema.Field{
				{Name: "callee", Kind: schema.Ref{Dest: []string{"Expression"}}},
				{Name: "arguments", Kind: schema.List{Of: schema.Ref{Dest: []string{"Expression"}}}},
			},
		},
		"PostfixExpression": {
			Name: "PostfixExpression", Parent: "Expression",
			Fields: []schema.Field{
				{Name: "operator", Kind: postfixOperator},
				{Name: "operand", Kind: schema.Ref{Dest: []string{"Expression"}}},
			},
		},
		"PrefixExpression": {
			Name: "PrefixExpression", Parent: "Expression",
			Fields: []schema.Field{
				{Name: "operator", Kind: prefixOperator},
				{Name: "operand", Kind: schema.Ref{Dest: []string{"Expression"}}},
			},
		},
		"StaticMemberExpression": {
			Name: "StaticMemberExpression", Parent: "Expression",
			Fields: []schema.Field{
				{Name: "object", Kind: schema.Ref{Dest: []string{"Expression"}}},
				{Name: "property", Kind: schema.Ref{Dest: []string{"Identifier"}}},
			},
		},
		"ThisExpression": {Name: "ThisExpression", Parent: "PrimaryExpression"},

		"BlockStatement": {
			Name: "BlockStatement", Parent: "Statement",
			Fields: []schema.Field{
				{Name: "block", Kind: schema.Ref{Dest: []string{"Block"}}},
			},
		},
		"BreakStatement": {
			Name: "BreakStatement", Parent: "Statement",
			Fields: []schema.Field{
				{Name: "label", Kind: schema.Optional("Identifier")},
			},
		},
		"ContinueStatement": {
			Name: "ContinueStatement", Parent: "Statement",
			Fields: []schema.Field{
				{Name: "label", Kind: schema.Optional("Identifier")},
			},
		},
		"DebuggerStatement": {Name: "DebuggerStatement", Parent: "Statement"},
		"DoWhileStatement": {
			Name: "DoWhileStatement", Parent: "Statement",
			Fields: []schema.Field{
				{Name: "body", Kind: schema.Ref{Dest: []string{"Statement"}}},
				{Name: "test", Kind: schema.Ref{Dest: []string{"Expression"}}},
			},
		},
		"EmptyStatement": {Name: "EmptyStatement", Parent: "Statement"},
		"ExpressionStatement": {
			Name: "ExpressionStatement", Parent: "Statement",
			Fields: []schema.Field{
				{Name: "expression", Kind: schema.Ref{Dest: []string{"Expression"}}},
			},
		},
		"ForInStatement": {
			Name: "ForInStatement", Parent: "Statement",
			Fields: []schema.Field{
				{Name: "left", Kind: schema.Ref{Dest: []string{"VariableDeclaration", "Expression"}}},
				{Name: "right", Kind: schema.Ref{Dest: []string{"Expression"}}},
				{Name: "body", Kind: schema.Ref{Dest: []string{"Statement"}}},
			},
		},
		"ForStatement": {
			Name: "ForStatement", Parent: "Statement",
			Fields: []schema.Field{
				{Name: "init", Kind: schema.Optional("VariableDeclaration", "Expression")},
				{Name: "test", Kind: schema.Optional("Expression")},
				{Name: "update", Kind: schema.Optional("Expression")},
				{Name: "body", Kind: schema.Ref{Dest: []string{"Statement"}}},
			},
		},
		"IfStatement": {
			Name: "IfStatement", Parent: "Statement",
			Fields: []schema.Field{
				{Name: "test", Kind: schema.Ref{Dest: []string{"Expression"}}},
				{Name: "consequent", Kind: schema.Ref{Dest: []string{"Statement"}}},
				{Name: "alternate", Kind: schema.Optional("Statement")},
			},
		},
		"LabeledStatement": {
			Name: "LabeledStatement", Parent: "Statement",
			Fields: []schema.Field{
				{Name: "label", Kind: schema.Ref{Dest: []string{"Identifier"}}},
				{Name: "body", Kind: schema.Ref{Dest: []string{"Statement"}}},
			},
		},
		"ReturnStatement": {
			Name: "ReturnStatement", Parent: "Statement",
			Fields: []schema.Field{
				{Name: "expression", Kind: schema.Optional("Expression")},
			},
		},
		"SwitchStatement": {
			Name: "SwitchStatement", Parent: "Statement",
			Fields: []schema.Field{
				{Name: "discriminant", Kind: schema.Ref{Dest: []string{"Expression"}}},
				{Name: "cases", Kind: schema.List{Of: schema.Ref{Dest: []string{"SwitchCase"}}}},
			},
		},
		"SwitchStatementWithDefault": {
			Name: "SwitchStatementWithDefault", Parent: "Statement",
			Fields: []schema.Field{
				{Name: "discriminant", Kind: schema.Ref{Dest: []string{"Expression"}}},
				{Name: "preDefaultCases", Kind: schema.List{Of: schema.Ref{Dest: []string{"SwitchCase"}}}},
				{Name: "defaultCase", Kind: schema.Ref{Dest: []string{"SwitchDefault"}}},
				{Name: "postDefaultCases", Kind: schema.List{Of: schema.Ref{Dest: []string{"SwitchCase"}}}},
			},
		},
		"ThrowStatement": {
			Name: "ThrowStatement", Parent: "Statement",
			Fields: []schema.Field{
				{Name: "expression", Kind: schema.Ref{Dest: []string{"Expression"}}},
			},
		},
		"TryCatchStatement": {
			Name: "TryCatchStatement", Parent: "Statement",
			Fields: []schema.Field{
				{Name: "body", Kind: schema.Ref{Dest: []string{"Block"}}},
				{Name: "catchClause", Kind: schema.Ref{Dest: []string{"CatchClause"}}},
			},
		},
		"TryFinallyStatement": {
			Name: "TryFinallyStatement", Parent: "Statement",
			Fields: []schema.Field{
				{Name: "body", Kind: schema.Ref{Dest: []string{"Block"}}},
				{Name: "catchClause", Kind: schema.Optional("CatchClause")},
				{Name: "finalizer", Kind: schema.Ref{Dest: []string{"Block"}}},
			},
		},
		"VariableDeclarationStatement": {
			Name: "VariableDeclarationStatement", Parent: "Statement",
			Fields: []schema.Field{
				{Name: "declaration", Kind: schema.Ref{Dest: []string{"VariableDeclaration"}}},
			},
		},
		"WhileStatement": {
			Name: "WhileStatement", Parent: "Statement",
			Fields: []schema.Field{
				{Name: "test", Kind: schema.Ref{Dest: []string{"Expression"}}},
				{Name: "body", Kind: schema.Ref{Dest: []string{"Statement"}}},
			},
		},
		"WithStatement": {
			Name: "WithStatement", Parent: "Statement",
			Fields: []schema.Field{
				{Name: "object", Kind: schema.Ref{Dest: []string{"Expression"}}},
				{Name: "body", Kind: schema.Ref{Dest: []string{"Statement"}}},
			},
		},

		"UnknownDirective": {
			Name: "UnknownDirective", Parent: "Directive",
			Fields: []schema.Field{
				{Name: "value", Kind: schema.Scalar{Of: schema.String}},
			},
		},
		"UseStrictDirective": {Name: "UseStrictDirective", Parent: "Directive"},
	},
}
