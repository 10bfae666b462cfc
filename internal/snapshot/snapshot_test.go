package snapshot_test

import (
	"testing"

	"irlift/internal/decode"
	"irlift/internal/fixture"
	"irlift/internal/foreign"
	"irlift/internal/snapshot"
)

func testModule(t *testing.T) *snapshot.Payload {
	t.Helper()
	i32 := fixture.Int(32)
	f := fixture.NewFunction("answer", i32).
		AddBlock(fixture.NewBlock("entry").Add(
			fixture.NewInstr(foreign.OpRet, fixture.Void(), fixture.IntConst(i32, 42))))
	mod := fixture.NewModule("demo").WithTriple("x86_64-unknown-linux-gnu").AddFunction(f)

	m, err := decode.Decode(mod, decode.Options{})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	return snapshot.FromModule(m, snapshot.DigestBytes([]byte("demo input")))
}

func TestFromModule_Summary(t *testing.T) {
	p := testModule(t)

	if p.Name != "demo" || p.TargetTriple != "x86_64-unknown-linux-gnu" {
		t.Errorf("header = %q / %q", p.Name, p.TargetTriple)
	}
	if len(p.Funcs) != 1 {
		t.Fatalf("got %d functions, want 1", len(p.Funcs))
	}
	fs := p.Funcs[0]
	if fs.Name != "answer" || fs.Blocks != 1 || fs.Instrs != 1 {
		t.Errorf("summary = %+v, want answer with 1 block / 1 instruction", fs)
	}
	if fs.ReturnType != "i32" {
		t.Errorf("ReturnType = %q, want i32", fs.ReturnType)
	}
	if fs.Signature != "i32 ()" {
		t.Errorf("Signature = %q, want i32 ()", fs.Signature)
	}
	if p.DecodedAt.IsZero() {
		t.Errorf("DecodedAt not stamped")
	}
}

func TestStore_PutGetRoundTrip(t *testing.T) {
	store, err := snapshot.OpenDir(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDir failed: %v", err)
	}
	p := testModule(t)

	if err := store.Put(p.Input, p); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	var got snapshot.Payload
	hit, err := store.Get(p.Input, &got)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !hit {
		t.Fatalf("Get missed a freshly stored payload")
	}
	if got.Name != p.Name || got.Globals != p.Globals || len(got.Funcs) != len(p.Funcs) {
		t.Errorf("round trip mangled payload: got %+v, want %+v", got, *p)
	}
	if got.Input != p.Input {
		t.Errorf("Input digest = %s, want %s", got.Input, p.Input)
	}
}

func TestStore_MissOnUnknownKey(t *testing.T) {
	store, err := snapshot.OpenDir(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDir failed: %v", err)
	}

	var got snapshot.Payload
	hit, err := store.Get(snapshot.DigestBytes([]byte("never stored")), &got)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if hit {
		t.Errorf("Get hit on a key that was never stored")
	}
}

func TestStore_NilStoreAlwaysMisses(t *testing.T) {
	var store *snapshot.Store
	p := testModule(t)

	if err := store.Put(p.Input, p); err != nil {
		t.Fatalf("nil Put errored: %v", err)
	}
	var got snapshot.Payload
	hit, err := store.Get(p.Input, &got)
	if err != nil {
		t.Fatalf("nil Get errored: %v", err)
	}
	if hit {
		t.Errorf("nil store reported a hit")
	}
}

func TestStore_DropAll(t *testing.T) {
	store, err := snapshot.OpenDir(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDir failed: %v", err)
	}
	p := testModule(t)
	if err := store.Put(p.Input, p); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	if err := store.DropAll(); err != nil {
		t.Fatalf("DropAll failed: %v", err)
	}

	var got snapshot.Payload
	hit, err := store.Get(p.Input, &got)
	if err != nil {
		t.Fatalf("Get after DropAll failed: %v", err)
	}
	if hit {
		t.Errorf("Get hit after DropAll")
	}
}

func TestDigest(t *testing.T) {
	d := snapshot.DigestBytes([]byte("abc"))
	if d.IsZero() {
		t.Errorf("digest of content reported zero")
	}
	var zero snapshot.Digest
	if !zero.IsZero() {
		t.Errorf("zero digest not recognized")
	}
	if len(d.String()) != 64 {
		t.Errorf("hex digest length = %d, want 64", len(d.String()))
	}
	if d != snapshot.DigestBytes([]byte("abc")) {
		t.Errorf("digest not deterministic")
	}
}
