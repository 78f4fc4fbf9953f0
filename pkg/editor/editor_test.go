package editor_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/modgen/pkg/buffer"
	"github.com/walteh/modgen/pkg/catalog"
	"github.com/walteh/modgen/pkg/editor"
	"github.com/walteh/modgen/pkg/inspect"
	"github.com/walteh/modgen/pkg/locator"
	"github.com/walteh/modgen/pkg/menu"
	"github.com/walteh/modgen/pkg/symbols"
)

// declaration wraps text as a single declaration covering the whole buffer
func declaration(b *buffer.TextBuffer, flags symbols.Flags) locator.Found {
	class := &symbols.Class{Member: symbols.Member{Name: "C", LineTo: b.LineCount() - 1, Flags: symbols.FlagClass}}
	if flags == 0 {
		return locator.Found{Class: class}
	}
	return locator.Found{
		Class:  class,
		Member: &symbols.Member{Name: "m", LineTo: b.LineCount() - 1, Flags: flags},
	}
}

type testingT interface {
	require.TestingT
	Helper()
}

func apply(t testingT, caps *catalog.Capabilities, b *buffer.TextBuffer, flags symbols.Flags, job menu.JobKind, vis string) {
	t.Helper()

	ctx := context.Background()
	state, ok := inspect.Inspect(ctx, b, declaration(b, flags), caps)
	require.True(t, ok, "declaration should be editable")

	action := menu.ToggleAction{Label: job.String(), Job: job, Target: state, Visibility: vis}
	require.NoError(t, editor.New(b, caps).Apply(ctx, action))
}

func TestApply_Haxe(t *testing.T) {
	haxe := catalog.Haxe(catalog.Options{StartWithModifiers: true})

	tests := []struct {
		name  string
		text  string
		flags symbols.Flags
		job   menu.JobKind
		vis   string
		want  string
	}{
		{
			name:  "add static",
			text:  "function foo() {}",
			flags: symbols.FlagFunction,
			job:   menu.JobAddStaticModifier,
			want:  "static function foo() {}",
		},
		{
			name:  "add static keeps visibility first",
			text:  "\tpublic function foo() {}",
			flags: symbols.FlagFunction,
			job:   menu.JobAddStaticModifier,
			want:  "\tpublic static function foo() {}",
		},
		{
			name:  "add static drops final",
			text:  "@:final public function foo() {}",
			flags: symbols.FlagFunction,
			job:   menu.JobAddStaticModifier,
			want:  "public static function foo() {}",
		},
		{
			name:  "remove static",
			text:  "public static inline function bar() {}",
			flags: symbols.FlagFunction | symbols.FlagStatic,
			job:   menu.JobRemoveStaticModifier,
			want:  "public inline function bar() {}",
		},
		{
			name:  "add inline lands before the keyword",
			text:  "public static function bar() {}",
			flags: symbols.FlagFunction,
			job:   menu.JobAddInlineModifier,
			want:  "public static inline function bar() {}",
		},
		{
			name:  "remove inline",
			text:  "inline function bar() {}",
			flags: symbols.FlagFunction,
			job:   menu.JobRemoveInlineModifier,
			want:  "function bar() {}",
		},
		{
			name:  "add final moves to line start",
			text:  "\tpublic static function baz() {}",
			flags: symbols.FlagFunction,
			job:   menu.JobMakeMethodFinal,
			want:  "\t@:final public static function baz() {}",
		},
		{
			name:  "remove final",
			text:  "@:final function baz() {}",
			flags: symbols.FlagFunction,
			job:   menu.JobMakeMethodNotFinal,
			want:  "function baz() {}",
		},
		{
			name: "make class final",
			text: "class Foo {",
			job:  menu.JobMakeClassFinal,
			want: "@:final class Foo {",
		},
		{
			name: "make class extern",
			text: "private class Foo {",
			job:  menu.JobMakeClassExtern,
			want: "private extern class Foo {",
		},
		{
			name: "make class not extern",
			text: "extern class Foo {",
			job:  menu.JobMakeClassNotExtern,
			want: "class Foo {",
		},
		{
			name:  "add completion metadata",
			text:  "\tpublic var x:Int;",
			flags: symbols.FlagVariable,
			job:   menu.JobAddNoCompletionMeta,
			want:  "\t@:noCompletion public var x:Int;",
		},
		{
			name:  "remove completion metadata",
			text:  "@:noCompletion var x:Int;",
			flags: symbols.FlagVariable,
			job:   menu.JobRemoveNoCompletionMeta,
			want:  "var x:Int;",
		},
		{
			name:  "make public inserts visibility",
			text:  "static function foo() {}",
			flags: symbols.FlagFunction,
			job:   menu.JobChangeAccess,
			vis:   "public",
			want:  "public static function foo() {}",
		},
		{
			name:  "make public goes before the first annotation",
			text:  "\t@:keep static function foo() {}",
			flags: symbols.FlagFunction,
			job:   menu.JobChangeAccess,
			vis:   "public",
			want:  "\tpublic @:keep static function foo() {}",
		},
		{
			name:  "make private drops the implicit keyword",
			text:  "public static function foo() {}",
			flags: symbols.FlagFunction,
			job:   menu.JobChangeAccess,
			vis:   "private",
			want:  "static function foo() {}",
		},
		{
			name: "make class public drops the keyword",
			text: "private class Foo {",
			job:  menu.JobChangeAccess,
			vis:  "public",
			want: "class Foo {",
		},
		{
			name: "make class private",
			text: "@:final class Foo {",
			job:  menu.JobChangeAccess,
			vis:  "private",
			want: "@:final private class Foo {",
		},
		{
			name:  "comment text is left alone",
			text:  "function foo() {} // static",
			flags: symbols.FlagFunction,
			job:   menu.JobAddStaticModifier,
			want:  "static function foo() {} // static",
		},
		{
			name:  "multi line header",
			text:  "@:noCompletion\n\tstatic function foo() {\n\t\treturn;\n\t}",
			flags: symbols.FlagFunction | symbols.FlagStatic,
			job:   menu.JobRemoveStaticModifier,
			want:  "@:noCompletion\n\tfunction foo() {\n\t\treturn;\n\t}",
		},
		{
			name:  "add static under a doc comment",
			text:  "/**\n * static helper\n */\nfunction foo() {}",
			flags: symbols.FlagFunction,
			job:   menu.JobAddStaticModifier,
			want:  "/**\n * static helper\n */\nstatic function foo() {}",
		},
		{
			name:  "remove static skips the doc comment",
			text:  "/**\n * static helper\n */\nstatic function foo() {}",
			flags: symbols.FlagFunction | symbols.FlagStatic,
			job:   menu.JobRemoveStaticModifier,
			want:  "/**\n * static helper\n */\nfunction foo() {}",
		},
		{
			name:  "make public ignores visibility words in a doc comment",
			text:  "/*\n private use only\n*/\nfunction foo() {}",
			flags: symbols.FlagFunction,
			job:   menu.JobChangeAccess,
			vis:   "public",
			want:  "/*\n private use only\n*/\npublic function foo() {}",
		},
		{
			name:  "body is never searched",
			text:  "function foo() {\n\tstatic var y;\n}",
			flags: symbols.FlagFunction | symbols.FlagStatic,
			job:   menu.JobRemoveStaticModifier,
			want:  "function foo() {\n\tstatic var y;\n}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := buffer.NewTextBuffer(tt.text)
			apply(t, haxe, b, tt.flags, tt.job, tt.vis)
			assert.Equal(t, tt.want, b.String())
		})
	}
}

func TestApply_ExplicitPrivate(t *testing.T) {
	haxe := catalog.Haxe(catalog.Options{StartWithModifiers: true, ExplicitPrivate: true})

	b := buffer.NewTextBuffer("public static function foo() {}")
	apply(t, haxe, b, symbols.FlagFunction, menu.JobChangeAccess, "private")
	assert.Equal(t, "private static function foo() {}", b.String())

	b = buffer.NewTextBuffer("static function foo() {}")
	apply(t, haxe, b, symbols.FlagFunction, menu.JobChangeAccess, "private")
	assert.Equal(t, "private static function foo() {}", b.String())
}

func TestApply_ActionScript(t *testing.T) {
	as3 := catalog.ActionScript3(catalog.Options{StartWithModifiers: true, CustomAccess: []string{"mx_internal"}})

	tests := []struct {
		name  string
		text  string
		flags symbols.Flags
		job   menu.JobKind
		vis   string
		want  string
	}{
		{
			name:  "make method final",
			text:  "\tpublic function foo():void {}",
			flags: symbols.FlagFunction,
			job:   menu.JobMakeMethodFinal,
			want:  "\tpublic final function foo():void {}",
		},
		{
			name:  "make method not final",
			text:  "\tpublic final function foo():void {}",
			flags: symbols.FlagFunction,
			job:   menu.JobMakeMethodNotFinal,
			want:  "\tpublic function foo():void {}",
		},
		{
			name: "make class final",
			text: "public class Foo {",
			job:  menu.JobMakeClassFinal,
			want: "public final class Foo {",
		},
		{
			name:  "custom namespace replaces protected",
			text:  "override protected function foo():void {}",
			flags: symbols.FlagFunction,
			job:   menu.JobChangeAccess,
			vis:   "mx_internal",
			want:  "mx_internal override function foo():void {}",
		},
		{
			name:  "internal is implicit",
			text:  "public static const X:int = 1;",
			flags: symbols.FlagConstant,
			job:   menu.JobChangeAccess,
			vis:   "internal",
			want:  "static const X:int = 1;",
		},
		{
			name:  "static on a final method",
			text:  "public final function foo():void {}",
			flags: symbols.FlagFunction,
			job:   menu.JobAddStaticModifier,
			want:  "public static function foo():void {}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := buffer.NewTextBuffer(tt.text)
			apply(t, as3, b, tt.flags, tt.job, tt.vis)
			assert.Equal(t, tt.want, b.String())
		})
	}
}

func TestApply_SingleUndoGroup(t *testing.T) {
	haxe := catalog.Haxe(catalog.Options{StartWithModifiers: true})
	b := buffer.NewTextBuffer("static @:final function foo() {}")

	apply(t, haxe, b, symbols.FlagFunction, menu.JobAddInlineModifier, "")
	assert.Equal(t, "@:final static inline function foo() {}", b.String())
	assert.Equal(t, 1, b.UndoDepth())

	require.True(t, b.Undo())
	assert.Equal(t, "static @:final function foo() {}", b.String())
}

func TestApply_NoTarget(t *testing.T) {
	haxe := catalog.Haxe(catalog.Options{})
	b := buffer.NewTextBuffer("function foo() {}")

	err := editor.New(b, haxe).Apply(context.Background(), menu.ToggleAction{Label: "x", Job: menu.JobAddStaticModifier})
	assert.Error(t, err)
}

func TestFixups(t *testing.T) {
	haxe := catalog.Haxe(catalog.Options{StartWithModifiers: true})
	span := editor.Span{From: 0, To: 0}

	tests := []struct {
		name string
		text string
		fix  func(*editor.Editor, context.Context, editor.Span) error
		want string
	}{
		{
			name: "final already at line start",
			text: "@:final function baz() {}",
			fix:  (*editor.Editor).FixFinalPlacement,
			want: "@:final function baz() {}",
		},
		{
			name: "final moved to line start",
			text: "\tstatic @:final function baz() {}",
			fix:  (*editor.Editor).FixFinalPlacement,
			want: "\t@:final static function baz() {}",
		},
		{
			name: "inline moved before keyword",
			text: "inline public function baz() {}",
			fix:  (*editor.Editor).FixInlinePlacement,
			want: "public inline function baz() {}",
		},
		{
			name: "metadata moved to line start",
			text: "public @:noCompletion var x;",
			fix:  (*editor.Editor).FixMetadataPlacement,
			want: "@:noCompletion public var x;",
		},
		{
			name: "visibility moved in front",
			text: "\tstatic inline public function baz() {}",
			fix:  (*editor.Editor).FixModifierOrder,
			want: "\tpublic static inline function baz() {}",
		},
		{
			name: "visibility follows leading annotations",
			text: "@:noCompletion static public var x;",
			fix:  (*editor.Editor).FixModifierOrder,
			want: "@:noCompletion public static var x;",
		},
		{
			name: "nothing to order",
			text: "public static var x;",
			fix:  (*editor.Editor).FixModifierOrder,
			want: "public static var x;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := buffer.NewTextBuffer(tt.text)
			require.NoError(t, tt.fix(editor.New(b, haxe), context.Background(), span))
			assert.Equal(t, tt.want, b.String())
		})
	}
}

func TestNormalize_WithoutModifierOrder(t *testing.T) {
	haxe := catalog.Haxe(catalog.Options{})
	b := buffer.NewTextBuffer("static public function baz() {}")

	require.NoError(t, editor.New(b, haxe).Normalize(context.Background(), editor.Span{From: 0, To: 0}))
	assert.Equal(t, "static public function baz() {}", b.String())
}
