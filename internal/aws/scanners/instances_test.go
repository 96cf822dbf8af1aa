package scanners

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/ec2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeInstanceAPI records the last DescribeInstances input and returns a
// canned response.
type fakeInstanceAPI struct {
	input  *ec2.DescribeInstancesInput
	output *ec2.DescribeInstancesOutput
	err    error
}

func (f *fakeInstanceAPI) DescribeInstances(input *ec2.DescribeInstancesInput) (*ec2.DescribeInstancesOutput, error) {
	f.input = input
	return f.output, f.err
}

func instancesOutput(instances ...*ec2.Instance) *ec2.DescribeInstancesOutput {
	return &ec2.DescribeInstancesOutput{
		Reservations: []*ec2.Reservation{
			{Instances: instances},
		},
	}
}

func instance(id, state, monitoring string) *ec2.Instance {
	return &ec2.Instance{
		InstanceId: aws.String(id),
		State:      &ec2.InstanceState{Name: aws.String(state)},
		Monitoring: &ec2.Monitoring{State: aws.String(monitoring)},
	}
}

func writeTestCredentials(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.WriteFile(path, []byte(`
[default]
aws_access_key_id = AKIATEST
aws_secret_access_key = test-secret
`), 0600))
	return path
}

func TestNewInstanceScanner(t *testing.T) {
	path := writeTestCredentials(t)

	scanner, err := NewInstanceScanner(Options{
		Profile:         "default",
		Region:          "us-east-1",
		Operation:       "state",
		CredentialsFile: path,
	})
	require.NoError(t, err)
	assert.NotNil(t, scanner.client)
}

func TestNewInstanceScannerUnknownProfile(t *testing.T) {
	path := writeTestCredentials(t)

	_, err := NewInstanceScanner(Options{
		Profile:         "missing",
		Region:          "us-east-1",
		CredentialsFile: path,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrProfileNotFound))
}

func TestNewInstanceScannerBadCredentialsFile(t *testing.T) {
	_, err := NewInstanceScanner(Options{
		Profile:         "default",
		Region:          "us-east-1",
		CredentialsFile: filepath.Join(t.TempDir(), "nope"),
	})
	assert.Error(t, err)
}

func TestExpandFilter(t *testing.T) {
	tests := []struct {
		name   string
		filter string
		want   []string
	}{
		{
			name:   "all expands to the full value set",
			filter: "all",
			want:   []string{"enabled", "disabled"},
		},
		{
			name:   "empty filter degrades to a single empty string",
			filter: "",
			want:   []string{""},
		},
		{
			name:   "any other value also degrades to a single empty string",
			filter: "enabled",
			want:   []string{""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, expandFilter(tt.filter, []string{"enabled", "disabled"}))
		})
	}
}

func TestInstancesByMonitoring(t *testing.T) {
	fake := &fakeInstanceAPI{
		output: instancesOutput(
			instance("i-1", "running", "enabled"),
			instance("i-2", "stopped", "disabled"),
		),
	}
	scanner := &InstanceScanner{
		opts:   Options{Region: "us-east-1", Filter: "all"},
		client: fake,
	}

	result, err := scanner.InstancesByMonitoring()
	require.NoError(t, err)
	require.False(t, result.Empty())

	assert.Equal(t, []string{"Instance", "Monitoring"}, result.Table.Columns())
	require.Equal(t, 2, result.Table.Len())
	assert.Equal(t, []string{"i-1", "enabled"}, result.Table.Rows()[0])
	assert.Equal(t, []string{"i-2", "disabled"}, result.Table.Rows()[1])

	// The "all" filter expands to both monitoring states on the wire
	require.Len(t, fake.input.Filters, 1)
	assert.Equal(t, "monitoring-state", aws.StringValue(fake.input.Filters[0].Name))
	assert.Equal(t, []string{"enabled", "disabled"}, aws.StringValueSlice(fake.input.Filters[0].Values))
}

func TestInstancesByMonitoringFilterDegrades(t *testing.T) {
	// A caller-supplied filter other than "all" is not passed through; the
	// effective filter is a single empty string.
	fake := &fakeInstanceAPI{output: instancesOutput()}
	scanner := &InstanceScanner{
		opts:   Options{Region: "us-east-1", Filter: "enabled"},
		client: fake,
	}

	result, err := scanner.InstancesByMonitoring()
	require.NoError(t, err)
	assert.Equal(t, []string{""}, aws.StringValueSlice(fake.input.Filters[0].Values))
	assert.True(t, result.Empty())
	assert.Equal(t, NoInstances, result.Message)
}

func TestInstancesByState(t *testing.T) {
	fake := &fakeInstanceAPI{
		output: instancesOutput(
			instance("i-2", "running", "disabled"),
			instance("i-1", "stopped", "disabled"),
		),
	}
	scanner := &InstanceScanner{
		opts:   Options{Region: "us-east-1", Filter: "all", Sort: "asc"},
		client: fake,
	}

	result, err := scanner.InstancesByState()
	require.NoError(t, err)
	require.False(t, result.Empty())

	assert.Equal(t, []string{"Instance", "State"}, result.Table.Columns())
	require.Equal(t, 2, result.Table.Len())

	// asc sort orders by instance ID
	assert.Equal(t, []string{"i-1", "stopped"}, result.Table.Rows()[0])
	assert.Equal(t, []string{"i-2", "running"}, result.Table.Rows()[1])

	// "all" expands to the six canonical lifecycle states
	require.Len(t, fake.input.Filters, 1)
	assert.Equal(t, "instance-state-name", aws.StringValue(fake.input.Filters[0].Name))
	assert.Equal(t, instanceStates, aws.StringValueSlice(fake.input.Filters[0].Values))
}

func TestInstancesByStateSortDesc(t *testing.T) {
	fake := &fakeInstanceAPI{
		output: instancesOutput(
			instance("i-1", "running", "disabled"),
			instance("i-3", "running", "disabled"),
			instance("i-2", "running", "disabled"),
		),
	}
	scanner := &InstanceScanner{
		opts:   Options{Filter: "all", Sort: "desc"},
		client: fake,
	}

	result, err := scanner.InstancesByState()
	require.NoError(t, err)
	assert.Equal(t, "i-3", result.Table.Rows()[0][0])
	assert.Equal(t, "i-1", result.Table.Rows()[2][0])
}

func TestInstancesByStateEmpty(t *testing.T) {
	fake := &fakeInstanceAPI{output: &ec2.DescribeInstancesOutput{}}
	scanner := &InstanceScanner{
		opts:   Options{Filter: "all"},
		client: fake,
	}

	result, err := scanner.InstancesByState()
	require.NoError(t, err)
	assert.True(t, result.Empty())
	assert.Equal(t, NoInstances, result.Message)
	assert.Nil(t, result.Table)
}

func TestInstancesQueryError(t *testing.T) {
	fake := &fakeInstanceAPI{err: fmt.Errorf("throttled")}
	scanner := &InstanceScanner{
		opts:   Options{Filter: "all"},
		client: fake,
	}

	result, err := scanner.InstancesByState()
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "throttled")

	result, err = scanner.InstancesByMonitoring()
	require.Error(t, err)
	assert.Nil(t, result)
}
