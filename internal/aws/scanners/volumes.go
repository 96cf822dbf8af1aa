package scanners

import (
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/ec2"

	"cloudscan/internal/logging"
	"cloudscan/internal/output"
)

// VolumeAPI is the subset of the EC2 API the volume scanner calls.
type VolumeAPI interface {
	DescribeVolumes(input *ec2.DescribeVolumesInput) (*ec2.DescribeVolumesOutput, error)
}

// volumeColumns is the fixed column order for volume tables.
var volumeColumns = []string{
	"VolumeId",
	"State",
	"Size",
	"VolumeType",
	"Iops",
	"Encrypted",
	"AvailabilityZone",
	"SnapshotId",
	"CreateTime",
}

// VolumeScanner queries EBS volumes in one region under one profile.
type VolumeScanner struct {
	opts   Options
	client VolumeAPI
}

// NewVolumeScanner resolves the profile immediately and opens an EC2 client
// for the region.
func NewVolumeScanner(opts Options) (*VolumeScanner, error) {
	client, err := newEC2Client(opts)
	if err != nil {
		return nil, err
	}
	return &VolumeScanner{opts: opts, client: client}, nil
}

// fetchVolumes lists every volume in the region and builds one row per
// volume with its full attribute set.
func (s *VolumeScanner) fetchVolumes() (*output.Table, error) {
	out, err := s.client.DescribeVolumes(&ec2.DescribeVolumesInput{})
	if err != nil {
		logging.Error("Failed to describe volumes", err, map[string]interface{}{
			"region":  s.opts.Region,
			"profile": s.opts.Profile,
		})
		return nil, fmt.Errorf("failed to describe volumes in %s: %w", s.opts.Region, err)
	}

	table := output.NewTable(volumeColumns...)
	for _, volume := range out.Volumes {
		var created string
		if volume.CreateTime != nil {
			created = volume.CreateTime.UTC().Format(time.RFC3339)
		}
		table.AddRow(
			aws.StringValue(volume.VolumeId),
			aws.StringValue(volume.State),
			strconv.FormatInt(aws.Int64Value(volume.Size), 10),
			aws.StringValue(volume.VolumeType),
			strconv.FormatInt(aws.Int64Value(volume.Iops), 10),
			strconv.FormatBool(aws.BoolValue(volume.Encrypted)),
			aws.StringValue(volume.AvailabilityZone),
			aws.StringValue(volume.SnapshotId),
			created,
		)
	}

	logging.Info("Completed EBS volume scan", map[string]interface{}{
		"region":  s.opts.Region,
		"volumes": table.Len(),
	})

	return table, nil
}

// VolumesByState reports every volume, restricted to a lifecycle state when
// a filter was supplied. The filter is an exact, case-sensitive match
// against the State column; no value validation is performed.
func (s *VolumeScanner) VolumesByState() (*Result, error) {
	table, err := s.fetchVolumes()
	if err != nil {
		return nil, err
	}

	// The sentinel reflects the unfiltered fetch; filtering may still
	// produce an empty table.
	if table.Len() == 0 {
		return &Result{Message: NoVolumes}, nil
	}

	if s.opts.Filter != "" {
		table = table.Filter("State", s.opts.Filter)
	}

	applySort(table, "VolumeId", s.opts.Sort)
	return &Result{Table: table}, nil
}

// VolumesByEncryption reports only volumes whose Encrypted attribute is
// false.
func (s *VolumeScanner) VolumesByEncryption() (*Result, error) {
	table, err := s.fetchVolumes()
	if err != nil {
		return nil, err
	}

	if table.Len() == 0 {
		return &Result{Message: NoVolumes}, nil
	}

	table = table.Filter("Encrypted", "false")

	applySort(table, "VolumeId", s.opts.Sort)
	return &Result{Table: table}, nil
}
