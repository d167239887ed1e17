package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/sllt/pagser/pkg/pagser/customerpb"
)

type client struct {
	conn *grpc.ClientConn
	customerpb.CustomerServiceClient
}

func dial(addr string) (*client, error) {
	conn, err := grpc.NewClient(addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithStatsHandler(otelgrpc.NewClientHandler()))
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", addr, err)
	}

	return &client{conn: conn, CustomerServiceClient: customerpb.NewCustomerServiceClient(conn)}, nil
}

func (c *client) Close() error { return c.conn.Close() }

func (c *client) newest(ctx context.Context, w io.Writer) error {
	resp, err := c.SelectNewestCustomers(ctx, &customerpb.CustomersRequest{})
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tLAST NAME\tREGISTERED")

	for _, cu := range resp.GetCustomers() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", cu.GetName(), cu.GetLastName(), cu.GetRegistrationDate())
	}

	return tw.Flush()
}

func (c *client) details(ctx context.Context, w io.Writer, id int32) error {
	resp, err := c.CustomerDetails(ctx, &customerpb.CustomerDetailsRequest{Id: id})
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "name:\t%s %s\n", resp.GetName(), resp.GetLastName())
	fmt.Fprintf(tw, "registered:\t%s\n", resp.GetRegistrationDate())
	fmt.Fprintf(tw, "address:\t%s\n", resp.GetAddress())

	if resp.Address2 != nil {
		fmt.Fprintf(tw, "address2:\t%s\n", resp.GetAddress2())
	}

	fmt.Fprintf(tw, "district:\t%s\n", resp.GetDistrict())
	fmt.Fprintf(tw, "phone:\t%s\n", resp.GetPhone())

	return tw.Flush()
}
