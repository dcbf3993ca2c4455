package parser

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type linkCall struct {
	input_dir, output_dir string
	overwrite             bool
}

type TrimTestSuite struct {
	suite.Suite
	input_dir, output_dir string

	calls []linkCall
}

func (self *TrimTestSuite) SetupTest() {
	var err error
	self.input_dir, err = os.MkdirTemp("", "usn_input")
	require.NoError(self.T(), err)

	self.output_dir, err = os.MkdirTemp("", "usn_output")
	require.NoError(self.T(), err)

	self.calls = nil
}

func (self *TrimTestSuite) TearDownTest() {
	os.RemoveAll(self.input_dir)
	os.RemoveAll(self.output_dir)
}

// Write a sparse journal of size bytes with 0xab in [start, end).
func (self *TrimTestSuite) writeJournal(name string, size, start, end int) []byte {
	fd, err := os.Create(filepath.Join(self.input_dir, name))
	require.NoError(self.T(), err)
	defer fd.Close()

	require.NoError(self.T(), fd.Truncate(int64(size)))
	_, err = fd.WriteAt(bytes.Repeat([]byte{0xab}, end-start), int64(start))
	require.NoError(self.T(), err)

	return makeStream(size, start, end)
}

func (self *TrimTestSuite) collaborator() Collaborator {
	return CollaboratorFunc(func(ctx context.Context,
		input_dir, output_dir string, overwrite bool) (int, error) {
		self.calls = append(self.calls, linkCall{input_dir, output_dir, overwrite})
		return 0, nil
	})
}

func (self *TrimTestSuite) readOutput() []byte {
	output, err := os.ReadFile(filepath.Join(self.input_dir, DefaultOutputName))
	require.NoError(self.T(), err)
	return output
}

func (self *TrimTestSuite) TestTrim() {
	data := self.writeJournal("$J", 10*1024*1024, 9000000, 10000000)

	result, err := Trim(NewConfig(self.input_dir, self.output_dir))
	require.NoError(self.T(), err)

	assert.Equal(self.T(), StatusTrimmed, result.Status)
	assert.Equal(self.T(), "$J", result.JournalName)
	assert.Equal(self.T(), filepath.Join(self.input_dir, "$USN"), result.OutputPath)
	assert.Equal(self.T(), int64(2093056), result.BytesWritten)

	output := self.readOutput()
	assert.True(self.T(), bytes.Equal(data[result.Boundary.Offset:], output))
}

func (self *TrimTestSuite) TestTrimPrefersModernName() {
	self.writeJournal("$J", 3*1024*1024, 2*1024*1024, 3*1024*1024)
	self.writeJournal("$USNJR~1", 1024, 0, 10)

	result, err := Trim(NewConfig(self.input_dir, self.output_dir))
	require.NoError(self.T(), err)
	assert.Equal(self.T(), "$J", result.JournalName)
}

func (self *TrimTestSuite) TestTrimAlternateName() {
	data := self.writeJournal("$USNJR~1", 100, 40, 100)

	result, err := Trim(NewConfig(self.input_dir, self.output_dir))
	require.NoError(self.T(), err)
	assert.Equal(self.T(), "$USNJR~1", result.JournalName)

	// The journal is shorter than one probe so it is kept whole.
	assert.Equal(self.T(), data, self.readOutput())
}

func (self *TrimTestSuite) TestTrimIdempotent() {
	self.writeJournal("$J", 5*1024*1024, 1234567, 5*1024*1024-99)

	_, err := Trim(NewConfig(self.input_dir, self.output_dir))
	require.NoError(self.T(), err)
	first := self.readOutput()

	_, err = Trim(NewConfig(self.input_dir, self.output_dir))
	require.NoError(self.T(), err)
	second := self.readOutput()

	assert.True(self.T(), bytes.Equal(first, second))
}

func (self *TrimTestSuite) TestTrimPagedReader() {
	self.writeJournal("$J", 4*1024*1024+333, 1000001, 4*1024*1024)

	_, err := Trim(NewConfig(self.input_dir, self.output_dir))
	require.NoError(self.T(), err)
	unpaged := self.readOutput()

	config := NewConfig(self.input_dir, self.output_dir)
	config.Options.PageSize = 512
	_, err = Trim(config)
	require.NoError(self.T(), err)

	assert.True(self.T(), bytes.Equal(unpaged, self.readOutput()))
}

func (self *TrimTestSuite) TestTrimNotFound() {
	result, err := Run(context.Background(),
		NewConfig(self.input_dir, self.output_dir), self.collaborator())
	require.NoError(self.T(), err)
	assert.Equal(self.T(), StatusNotFound, result.Status)

	// Nothing written and the linker never ran.
	entries, err := os.ReadDir(self.input_dir)
	require.NoError(self.T(), err)
	assert.Equal(self.T(), 0, len(entries))
	assert.Equal(self.T(), 0, len(self.calls))
}

func (self *TrimTestSuite) TestTrimAllZero() {
	self.writeJournal("$J", 3*1024*1024, 0, 0)

	result, err := Run(context.Background(),
		NewConfig(self.input_dir, self.output_dir), self.collaborator())
	assert.Nil(self.T(), result)
	assert.True(self.T(), errors.Is(err, ErrBoundaryExhausted), "%v", err)

	_, err = os.Stat(filepath.Join(self.input_dir, DefaultOutputName))
	assert.True(self.T(), errors.Is(err, os.ErrNotExist))
	assert.Equal(self.T(), 0, len(self.calls))
}

func (self *TrimTestSuite) TestTrimEmptyJournal() {
	self.writeJournal("$J", 0, 0, 0)

	_, err := Trim(NewConfig(self.input_dir, self.output_dir))
	assert.True(self.T(), errors.Is(err, ErrBoundaryExhausted), "%v", err)
}

func (self *TrimTestSuite) TestRunCallsCollaborator() {
	self.writeJournal("$J", 2*1024*1024, 1024*1024+5, 2*1024*1024)

	config := NewConfig(self.input_dir, self.output_dir)
	result, err := Run(context.Background(), config, self.collaborator())
	require.NoError(self.T(), err)
	assert.Equal(self.T(), StatusTrimmed, result.Status)

	config.Append = true
	_, err = Run(context.Background(), config, self.collaborator())
	require.NoError(self.T(), err)

	assert.Equal(self.T(), []linkCall{
		{self.input_dir, self.output_dir, true},
		{self.input_dir, self.output_dir, false},
	}, self.calls)
}

func (self *TrimTestSuite) TestRunLinkerStatus() {
	self.writeJournal("$J", 2*1024*1024, 0, 2*1024*1024)

	result, err := Run(context.Background(),
		NewConfig(self.input_dir, self.output_dir),
		CollaboratorFunc(func(ctx context.Context,
			input_dir, output_dir string, overwrite bool) (int, error) {
			return 3, nil
		}))
	require.NoError(self.T(), err)
	assert.Equal(self.T(), 3, result.LinkerStatus)
}

func (self *TrimTestSuite) TestBoundaryGolden() {
	self.writeJournal("$J", 10*1024*1024, 9000000, 10000000)

	result, err := Trim(NewConfig(self.input_dir, self.output_dir))
	require.NoError(self.T(), err)

	serialized, err := json.MarshalIndent(result.Boundary, "", " ")
	require.NoError(self.T(), err)

	g := goldie.New(self.T())
	g.Assert(self.T(), "TestBoundaryGolden", serialized)
}

func TestTrim(t *testing.T) {
	suite.Run(t, &TrimTestSuite{})
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "Trimmed", StatusTrimmed.String())
	assert.Equal(t, "NotFound", StatusNotFound.String())
	assert.Equal(t, "Status(7)", Status(7).String())
}

func init() {
	spew.Config.DisablePointerAddresses = true
	spew.Config.SortKeys = true
}
