package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nushell-works/ulidkit/internal/config"
	"github.com/nushell-works/ulidkit/pkg/log"
	"github.com/nushell-works/ulidkit/pkg/ulid"
)

func testEnv() *Env {
	return &Env{
		Config: config.Default(),
		Logger: log.NewLogger(log.WithOutput(log.NewWriterOutput(&bytes.Buffer{}))),
		Gen:    ulid.NewGenerator(),
	}
}

func execute(t *testing.T, env *Env, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRoot(env)
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(&bytes.Buffer{})
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRoot_ConfigFlagOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ulidkit.json")
	if err := os.WriteFile(path, []byte(`{"strict": true}`), 0o644); err != nil {
		t.Fatalf("fixture: %v", err)
	}
	env := testEnv()
	future, err := env.Gen.NewAt(time.Now().UnixMilli() + 86_400_000)
	if err != nil {
		t.Fatalf("fixture: %v", err)
	}

	out, err := execute(t, env, "", "--config", path, "validate", future.String())
	if err == nil {
		t.Fatalf("strict config must reject a future timestamp")
	}
	if !strings.Contains(out, future.String()+"\tfalse") {
		t.Fatalf("expected false verdict, got %q", out)
	}

	// Without the config file the same input passes.
	out, err = execute(t, testEnv(), "", "validate", future.String())
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, future.String()+"\ttrue") {
		t.Fatalf("expected true verdict, got %q", out)
	}
}

func TestRoot_UnknownLogLevelRejected(t *testing.T) {
	if _, err := execute(t, testEnv(), "", "--log-level", "bogus", "info"); err == nil {
		t.Fatalf("expected error for unknown log level")
	}
}

func TestGenerate_DefaultSingle(t *testing.T) {
	out, err := execute(t, testEnv(), "", "generate")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	got := strings.TrimSpace(out)
	if !ulid.Validate(got) {
		t.Fatalf("expected a valid ULID, got %q", got)
	}
}

func TestGenerate_CountAndPinnedTimestamp(t *testing.T) {
	out, err := execute(t, testEnv(), "", "generate", "--count", "3", "--timestamp", "1465824320894")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), out)
	}
	for _, line := range lines {
		u, err := ulid.Parse(line)
		if err != nil {
			t.Fatalf("parse %q: %v", line, err)
		}
		if u.Timestamp() != 1465824320894 {
			t.Fatalf("timestamp = %d, want 1465824320894", u.Timestamp())
		}
	}
}

func TestGenerate_CountAboveCapFails(t *testing.T) {
	_, err := execute(t, testEnv(), "", "generate", "--count", "10001")
	if err == nil {
		t.Fatalf("expected error for count above cap")
	}
}

func TestGenerate_JSONFormat(t *testing.T) {
	out, err := execute(t, testEnv(), "", "generate", "--format", "json")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	var c ulid.Components
	if err := json.Unmarshal([]byte(out), &c); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !ulid.Validate(c.ULID) {
		t.Fatalf("components carry invalid ulid %q", c.ULID)
	}
}

func TestValidate_MixedVerdicts(t *testing.T) {
	out, err := execute(t, testEnv(), "",
		"validate", "01AN4Z07BY79KA1307SR9X4MV3", "not-a-ulid")
	if err == nil {
		t.Fatalf("expected non-nil error when some inputs are invalid")
	}
	if !strings.Contains(out, "01AN4Z07BY79KA1307SR9X4MV3\ttrue") {
		t.Fatalf("missing valid verdict in output: %q", out)
	}
	if !strings.Contains(out, "not-a-ulid\tfalse") {
		t.Fatalf("missing invalid verdict in output: %q", out)
	}
}

func TestValidate_DetailedReport(t *testing.T) {
	out, err := execute(t, testEnv(), "", "validate", "--detailed", "TOO-SHORT")
	if err == nil {
		t.Fatalf("expected error for invalid input")
	}
	if !strings.Contains(out, `"valid":false`) {
		t.Fatalf("expected detailed report in output: %q", out)
	}
}

func TestValidate_ReadsStdin(t *testing.T) {
	stdin := "01AN4Z07BY79KA1307SR9X4MV3\n\n01AN4Z07BY79KA1307SR9X4MV3\n"
	out, err := execute(t, testEnv(), stdin, "validate")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got := strings.Count(out, "\ttrue"); got != 2 {
		t.Fatalf("expected 2 verdicts, got %d: %q", got, out)
	}
}

func TestParse_TimestampOnly(t *testing.T) {
	out, err := execute(t, testEnv(), "",
		"parse", "--format", "timestamp-only", "01AN4Z07BY79KA1307SR9X4MV3")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if strings.TrimSpace(out) != "1465824320894" {
		t.Fatalf("timestamp = %q, want 1465824320894", strings.TrimSpace(out))
	}
}

func TestParse_LowercaseCanonicalized(t *testing.T) {
	out, err := execute(t, testEnv(), "",
		"parse", strings.ToLower("01AN4Z07BY79KA1307SR9X4MV3"))
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	var c ulid.Components
	if err := json.Unmarshal([]byte(out), &c); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if c.ULID != "01AN4Z07BY79KA1307SR9X4MV3" {
		t.Fatalf("canonical form = %q", c.ULID)
	}
}

func TestInspect_CarriesUUIDForm(t *testing.T) {
	out, err := execute(t, testEnv(), "", "inspect", "01AN4Z07BY79KA1307SR9X4MV3")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, `"time": "2016-06-13T13:25:20.894Z"`) {
		t.Fatalf("missing ISO time in output: %q", out)
	}
	if !strings.Contains(out, `"uuid"`) {
		t.Fatalf("missing uuid field in output: %q", out)
	}
}

func TestSort_OrdersChronologically(t *testing.T) {
	env := testEnv()
	older, _ := env.Gen.NewAt(1000)
	newer, _ := env.Gen.NewAt(2000)

	out, err := execute(t, env, "", "sort", newer.String(), older.String())
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 || lines[0] != older.String() || lines[1] != newer.String() {
		t.Fatalf("unexpected order: %v", lines)
	}

	out, err = execute(t, env, "", "sort", "--reverse", older.String(), newer.String())
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	lines = strings.Split(strings.TrimSpace(out), "\n")
	if lines[0] != newer.String() {
		t.Fatalf("reverse sort should put newest first: %v", lines)
	}
}

func TestSort_ByTimestampOnlyIsStable(t *testing.T) {
	env := testEnv()
	a, _ := env.Gen.NewAt(1000)
	b, _ := env.Gen.NewAt(1000)
	if b.Compare(a) < 0 {
		a, b = b, a
	}
	// Submit the lexicographically larger one first; equal timestamps must
	// keep submission order.
	out, err := execute(t, env, "", "sort", "--by-timestamp-only", b.String(), a.String())
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if lines[0] != b.String() || lines[1] != a.String() {
		t.Fatalf("expected submission order preserved, got %v", lines)
	}
}

func TestStream_ValidateFromStdin(t *testing.T) {
	env := testEnv()
	u, _ := env.Gen.New()
	stdin := u.String() + "\nnot-a-ulid\n"

	out, err := execute(t, env, stdin, "stream", "validate", "--continue-on-error")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, u.String()+"\ttrue") {
		t.Fatalf("missing valid verdict: %q", out)
	}
	if !strings.Contains(out, "not-a-ulid\tfalse") {
		t.Fatalf("missing invalid verdict: %q", out)
	}
}

func TestStream_AbortSurfacesError(t *testing.T) {
	_, err := execute(t, testEnv(), "bad-input\n", "stream", "parse")
	if err == nil {
		t.Fatalf("expected aborted job to surface an error")
	}
}

func TestStream_UnknownOperation(t *testing.T) {
	_, err := execute(t, testEnv(), "", "stream", "frobnicate")
	if err == nil {
		t.Fatalf("expected error for unknown operation")
	}
}

func TestGenerateStream_UniqueTimestamps(t *testing.T) {
	out, err := execute(t, testEnv(), "",
		"generate-stream", "5", "--timestamp", "1000", "--unique-timestamps")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 identifiers, got %d", len(lines))
	}
	for i, line := range lines {
		u, err := ulid.Parse(line)
		if err != nil {
			t.Fatalf("parse %q: %v", line, err)
		}
		if u.Timestamp() != uint64(1000+i) {
			t.Fatalf("line %d timestamp = %d, want %d", i, u.Timestamp(), 1000+i)
		}
	}
}

func TestGenerateStream_RejectsNonNumericCount(t *testing.T) {
	for _, bad := range []string{"10x", "ten", "1.5", ""} {
		if _, err := execute(t, testEnv(), "", "generate-stream", bad); err == nil {
			t.Fatalf("count %q must be rejected", bad)
		}
	}
}

func TestGenerate_PinnedTimestampWithMonotonic(t *testing.T) {
	out, err := execute(t, testEnv(), "",
		"generate", "--count", "5", "--timestamp", "1465824320894", "--monotonic")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d", len(lines))
	}
	var prev ulid.ULID
	for i, line := range lines {
		u, err := ulid.Parse(line)
		if err != nil {
			t.Fatalf("parse %q: %v", line, err)
		}
		if u.Timestamp() != 1465824320894 {
			t.Fatalf("line %d timestamp = %d, want 1465824320894", i, u.Timestamp())
		}
		if i > 0 && u.Compare(prev) <= 0 {
			t.Fatalf("line %d not strictly increasing: %s <= %s", i, u, prev)
		}
		prev = u
	}
}

func TestEncodeDecode_Base32RoundTrip(t *testing.T) {
	out, err := execute(t, testEnv(), "", "encode", "base32", "foobar")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if strings.TrimSpace(out) != "CSQPYRK1E8" {
		t.Fatalf("encode = %q, want CSQPYRK1E8", strings.TrimSpace(out))
	}

	out, err = execute(t, testEnv(), "", "decode", "base32", "CSQPYRK1E8")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out != "foobar" {
		t.Fatalf("decode = %q, want foobar", out)
	}
}

func TestEncode_HexFromStdin(t *testing.T) {
	out, err := execute(t, testEnv(), "hi\n", "encode", "hex")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if strings.TrimSpace(out) != "6869" {
		t.Fatalf("encode = %q, want 6869", strings.TrimSpace(out))
	}
}

func TestTime_ParseNormalizesBothForms(t *testing.T) {
	out, err := execute(t, testEnv(), "", "time", "parse", "1465824320894")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, "1465824320894\t2016-06-13T13:25:20.894Z") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestUUID_RoundTripThroughULID(t *testing.T) {
	env := testEnv()
	u, _ := env.Gen.New()

	out, err := execute(t, env, "", "uuid", "from-ulid", u.String())
	if err != nil {
		t.Fatalf("from-ulid: %v", err)
	}
	asUUID := strings.TrimSpace(out)

	out, err = execute(t, env, "", "uuid", "to-ulid", asUUID)
	if err != nil {
		t.Fatalf("to-ulid: %v", err)
	}
	if strings.TrimSpace(out) != u.String() {
		t.Fatalf("round trip = %q, want %q", strings.TrimSpace(out), u.String())
	}
}

func TestHash_SHA256KnownVector(t *testing.T) {
	out, err := execute(t, testEnv(), "", "hash", "sha256", "abc")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	want := "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if strings.TrimSpace(out) != want {
		t.Fatalf("sha256 = %q, want %q", strings.TrimSpace(out), want)
	}
}

func TestHash_RandomLength(t *testing.T) {
	out, err := execute(t, testEnv(), "", "hash", "random", "--length", "8")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got := len(strings.TrimSpace(out)); got != 16 {
		t.Fatalf("expected 16 hex characters, got %d", got)
	}
}

func TestSecurityAdvice_AssessesContext(t *testing.T) {
	out, err := execute(t, testEnv(), "", "security-advice", "--context", "session token")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, `"sensitive": true`) {
		t.Fatalf("expected sensitive assessment: %q", out)
	}
}

func TestInfo_ReportsFormatConstants(t *testing.T) {
	out, err := execute(t, testEnv(), "", "info")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, `"encoded_size": 26`) {
		t.Fatalf("missing encoded size: %q", out)
	}
}
