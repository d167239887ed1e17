package main

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/sllt/pagser/pkg/pagser/customerpb"
	"github.com/sllt/pagser/pkg/pagser/testutil"
)

type stubCustomers struct {
	customerpb.UnimplementedCustomerServiceServer
}

func (stubCustomers) SelectNewestCustomers(context.Context, *customerpb.CustomersRequest) (*customerpb.CustomersResponse, error) {
	return &customerpb.CustomersResponse{Customers: []*customerpb.Customer{
		{Name: "PATRICIA", LastName: "JOHNSON", RegistrationDate: "2006-02-15"},
		{Name: "MARY", LastName: "SMITH", RegistrationDate: "2006-02-14"},
	}}, nil
}

func (stubCustomers) CustomerDetails(_ context.Context, req *customerpb.CustomerDetailsRequest) (*customerpb.CustomerDetailsResponse, error) {
	if req.GetId() != 1 {
		return nil, status.Error(codes.InvalidArgument, "No customer found for requested ID")
	}

	return &customerpb.CustomerDetailsResponse{
		Name: "MARY", LastName: "SMITH", RegistrationDate: "2006-02-14",
		Address: "47 MySakila Drive", District: "Alberta", Phone: "14033335568",
	}, nil
}

func startStubServer(t *testing.T) string {
	t.Helper()

	addr := fmt.Sprintf("127.0.0.1:%d", testutil.GetFreePort(t))

	lis, err := (&net.ListenConfig{}).Listen(t.Context(), "tcp", addr)
	require.NoError(t, err)

	s := grpc.NewServer()
	customerpb.RegisterCustomerServiceServer(s, stubCustomers{})

	go func() { _ = s.Serve(lis) }()

	t.Cleanup(s.Stop)

	return addr
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	cmd := newCommand()
	cmd.Writer = &out
	cmd.ErrWriter = &out

	err := cmd.Run(t.Context(), append([]string{"pagser"}, args...))

	return out.String(), err
}

func TestDescribe(t *testing.T) {
	out, err := run(t, "describe", "--proto", filepath.Join("..", "..", "protos", "customer_service.proto"))
	require.NoError(t, err)

	assert.Contains(t, out, "service customer_service.CustomerService")
	assert.Contains(t, out, "rpc SelectCustomers(CustomersRequest) returns (stream Customer)")
	assert.Contains(t, out, "rpc SelectNewestCustomers(CustomersRequest) returns (CustomersResponse)")
	assert.Contains(t, out, "rpc CustomerDetails(CustomerDetailsRequest) returns (CustomerDetailsResponse)")
}

func TestDescribe_Errors(t *testing.T) {
	broken := filepath.Join(t.TempDir(), "broken.proto")
	require.NoError(t, os.WriteFile(broken, []byte(`syntax = "proto3"; service {`), 0o600))

	tests := []struct {
		path string
		err  error
	}{
		{filepath.Join(t.TempDir(), "missing.proto"), errOpeningProtoFile},
		{broken, errFailedToParseProto},
	}

	for i, tc := range tests {
		err := describe(&bytes.Buffer{}, tc.path)

		require.ErrorIs(t, err, tc.err, "TEST[%d], Failed.\n", i)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)

	assert.Equal(t, "pagser dev (commit unknown, built unknown)\n", out)
}

func TestClientCommands(t *testing.T) {
	addr := startStubServer(t)

	out, err := run(t, "newest", "--addr", addr)
	require.NoError(t, err)

	assert.Contains(t, out, "NAME")
	assert.Regexp(t, `PATRICIA\s+JOHNSON\s+2006-02-15`, out)
	assert.Regexp(t, `MARY\s+SMITH\s+2006-02-14`, out)

	out, err = run(t, "details", "--addr", addr, "--id", "1")
	require.NoError(t, err)

	assert.Regexp(t, `name:\s+MARY SMITH`, out)
	assert.Regexp(t, `address:\s+47 MySakila Drive`, out)
	assert.NotContains(t, out, "address2")

	_, err = run(t, "details", "--addr", addr, "--id", "9")
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = run(t, "details", "--addr", addr)
	require.Error(t, err, "--id is required")
}
