package partition

import (
	"errors"
	"net"
	"os"
	"testing"

	check "gopkg.in/check.v1"
)

var _ = check.Suite(new(DetectorTestSuite))

func Test(t *testing.T) {
	check.TestingT(t)
}

type DetectorTestSuite struct{}

func (s *DetectorTestSuite) SetUpTest(c *check.C) {
	getHostname = os.Hostname
	lookupSRV = net.LookupSRV
}

func (s *DetectorTestSuite) TearDownTest(c *check.C) {
	getHostname = os.Hostname
	lookupSRV = net.LookupSRV
}

func (s *DetectorTestSuite) TestDummyDetector(c *check.C) {
	det := DummyDetector{Partition: 1, NumOfPartitions: 4}

	currPartition, numOfPartitions, err := det.PartitionInfo()
	c.Assert(err, check.IsNil)
	c.Assert(currPartition, check.Equals, 1)
	c.Assert(numOfPartitions, check.Equals, 4)
}

func (s *DetectorTestSuite) TestDetectFromSRVRecords(c *check.C) {
	getHostname = func() (string, error) {
		return "recommender-1", nil
	}

	lookupSRV = func(service, proto, name string) (cname string, addrs []*net.SRV, err error) {
		c.Assert(service, check.Equals, "")
		c.Assert(proto, check.Equals, "")
		c.Assert(name, check.Equals, "recommender-service")

		return "recommender-service", make([]*net.SRV, 4), nil
	}

	det := DetectFromSRVRecords("recommender-service")
	currPartition, numOfPartitions, err := det.PartitionInfo()

	c.Assert(err, check.IsNil)
	c.Assert(currPartition, check.Equals, 1)
	c.Assert(numOfPartitions, check.Equals, 4)
}

func (s *DetectorTestSuite) TestDetectFromSRVRecordsWithNoAvailableData(c *check.C) {
	getHostname = func() (string, error) {
		return "recommender-1", nil
	}

	lookupSRV = func(service, proto, name string) (cname string, addrs []*net.SRV, err error) {
		return "", nil, errors.New("host not found")
	}

	det := DetectFromSRVRecords("recommender-service")
	_, _, err := det.PartitionInfo()
	c.Assert(errors.Is(err, ErrNoPartitionDataAvailableYet), check.Equals, true)
}
