package scanners

import (
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/ec2"

	awslib "cloudscan/internal/aws"
	"cloudscan/internal/logging"
	"cloudscan/internal/output"
)

// ErrProfileNotFound is returned by scanner constructors when the requested
// profile does not exist in the credentials file.
var ErrProfileNotFound = errors.New("profile not found in credentials file")

// InstanceAPI is the subset of the EC2 API the instance scanner calls.
type InstanceAPI interface {
	DescribeInstances(input *ec2.DescribeInstancesInput) (*ec2.DescribeInstancesOutput, error)
}

// Options configures a scanner for one profile and region.
type Options struct {
	Profile         string
	Region          string
	Operation       string
	Filter          string
	Sort            string
	CredentialsFile string
}

// instanceStates are the canonical lifecycle states an "all" filter
// expands to.
var instanceStates = []string{
	"pending",
	"running",
	"shutting-down",
	"terminated",
	"stopping",
	"stopped",
}

// InstanceScanner queries EC2 instances in one region under one profile.
type InstanceScanner struct {
	opts   Options
	client InstanceAPI
}

// NewInstanceScanner resolves the profile immediately and opens an EC2
// client for the region.
func NewInstanceScanner(opts Options) (*InstanceScanner, error) {
	client, err := newEC2Client(opts)
	if err != nil {
		return nil, err
	}
	return &InstanceScanner{opts: opts, client: client}, nil
}

// newEC2Client resolves credentials and builds a regional EC2 service
// client. Shared by both scanners.
func newEC2Client(opts Options) (*ec2.EC2, error) {
	creds, ok, err := awslib.ResolveProfile(opts.CredentialsFile, opts.Profile)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve profile %q: %w", opts.Profile, err)
	}
	if !ok {
		return nil, fmt.Errorf("profile %q: %w", opts.Profile, ErrProfileNotFound)
	}

	sess, err := awslib.NewSession(creds, opts.Region)
	if err != nil {
		return nil, err
	}

	return ec2.New(sess), nil
}

// expandFilter returns the effective filter values for an instance query.
// The literal "all" expands to the full value set; any other supplied value
// degrades to a single empty string and therefore matches nothing.
func expandFilter(filter string, all []string) []string {
	if filter == "all" {
		return all
	}
	return []string{""}
}

// InstancesByMonitoring reports instances grouped by detailed-monitoring
// status as a two-column table.
func (s *InstanceScanner) InstancesByMonitoring() (*Result, error) {
	values := expandFilter(s.opts.Filter, []string{"enabled", "disabled"})

	out, err := s.client.DescribeInstances(&ec2.DescribeInstancesInput{
		Filters: []*ec2.Filter{
			{
				Name:   aws.String("monitoring-state"),
				Values: aws.StringSlice(values),
			},
		},
	})
	if err != nil {
		logging.Error("Failed to describe instances", err, map[string]interface{}{
			"region":  s.opts.Region,
			"profile": s.opts.Profile,
			"filter":  "monitoring-state",
		})
		return nil, fmt.Errorf("failed to describe instances by monitoring: %w", err)
	}

	table := output.NewTable("Instance", "Monitoring")
	for _, reservation := range out.Reservations {
		for _, instance := range reservation.Instances {
			var state string
			if instance.Monitoring != nil {
				state = aws.StringValue(instance.Monitoring.State)
			}
			table.AddRow(aws.StringValue(instance.InstanceId), state)
		}
	}

	logging.Info("Completed EC2 monitoring scan", map[string]interface{}{
		"region":    s.opts.Region,
		"instances": table.Len(),
	})

	if table.Len() == 0 {
		return &Result{Message: NoInstances}, nil
	}

	applySort(table, "Instance", s.opts.Sort)
	return &Result{Table: table}, nil
}

// InstancesByState reports instances grouped by lifecycle state as a
// two-column table.
func (s *InstanceScanner) InstancesByState() (*Result, error) {
	values := expandFilter(s.opts.Filter, instanceStates)

	out, err := s.client.DescribeInstances(&ec2.DescribeInstancesInput{
		Filters: []*ec2.Filter{
			{
				Name:   aws.String("instance-state-name"),
				Values: aws.StringSlice(values),
			},
		},
	})
	if err != nil {
		logging.Error("Failed to describe instances", err, map[string]interface{}{
			"region":  s.opts.Region,
			"profile": s.opts.Profile,
			"filter":  "instance-state-name",
		})
		return nil, fmt.Errorf("failed to describe instances by state: %w", err)
	}

	table := output.NewTable("Instance", "State")
	for _, reservation := range out.Reservations {
		for _, instance := range reservation.Instances {
			var state string
			if instance.State != nil {
				state = aws.StringValue(instance.State.Name)
			}
			table.AddRow(aws.StringValue(instance.InstanceId), state)
		}
	}

	logging.Info("Completed EC2 state scan", map[string]interface{}{
		"region":    s.opts.Region,
		"instances": table.Len(),
	})

	if table.Len() == 0 {
		return &Result{Message: NoInstances}, nil
	}

	applySort(table, "Instance", s.opts.Sort)
	return &Result{Table: table}, nil
}

// applySort orders the table by column when a sort order was supplied.
// Anything other than "desc" sorts ascending.
func applySort(t *output.Table, column, order string) {
	if order == "" {
		return
	}
	t.Sort(column, order == "desc")
}
