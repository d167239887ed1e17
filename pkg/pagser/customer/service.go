package customer

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/sllt/pagser/pkg/pagser/customerpb"
	"github.com/sllt/pagser/pkg/pagser/datasource/sql"
	"github.com/sllt/pagser/pkg/pagser/logging"
)

const (
	newestCustomersQuery = "SELECT first_name, last_name, create_date FROM customer ORDER BY create_date DESC LIMIT 10"

	customerDetailsQuery = `SELECT first_name, last_name, create_date, address, address2, district, phone
		FROM customer c INNER JOIN address a ON c.address_id = a.address_id
		WHERE c.customer_id = ?`

	msgNotFound       = "No customer found for requested ID"
	msgNotImplemented = "Not yet implemented"
)

var errCustomerNotFound = errors.New("customer not found")

// Service implements customerpb.CustomerServiceServer on top of a SQL executor.
type Service struct {
	customerpb.UnimplementedCustomerServiceServer

	db     sql.Executor
	logger logging.Logger
}

func NewService(db sql.Executor, logger logging.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// SelectCustomers streaming is not offered yet.
func (*Service) SelectCustomers(*customerpb.CustomersRequest, customerpb.CustomerService_SelectCustomersServer) error {
	return status.Error(codes.Unimplemented, msgNotImplemented)
}

// SelectNewestCustomers returns up to ten customers, most recently registered first.
func (s *Service) SelectNewestCustomers(ctx context.Context, _ *customerpb.CustomersRequest) (*customerpb.CustomersResponse, error) {
	q, err := sql.NewQuery(newestCustomersQuery)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	summaries, err := sql.FetchMany(ctx, s.db, q, summaryShape)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	resp := &customerpb.CustomersResponse{Customers: make([]*customerpb.Customer, 0, len(summaries))}
	for _, c := range summaries {
		resp.Customers = append(resp.Customers, c.proto())
	}

	return resp, nil
}

// CustomerDetails looks a customer up by id. An unknown id is reported as InvalidArgument.
func (s *Service) CustomerDetails(ctx context.Context, req *customerpb.CustomerDetailsRequest) (*customerpb.CustomerDetailsResponse, error) {
	q, err := sql.NewQuery(customerDetailsQuery, req.GetId())
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	detail, found, err := sql.FetchOne(ctx, s.db, q, detailShape)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	if !found {
		return nil, s.toStatus(ctx, fmt.Errorf("%w: id %d", errCustomerNotFound, req.GetId()))
	}

	return detail.proto(), nil
}

// toStatus classifies err into the status returned to the client. Context errors are checked
// first so an abandoned query is never reported as a backend failure or a missing row.
func (s *Service) toStatus(ctx context.Context, err error) error {
	l := logging.NewContextLogger(ctx, s.logger)

	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		l.Infof("request abandoned: %v", err)

		return status.FromContextError(err).Err()
	case errors.Is(err, errCustomerNotFound):
		l.Debug(err)

		return status.Error(codes.InvalidArgument, msgNotFound)
	default:
		l.Errorf("customer query failed: %v", err)

		return status.Errorf(codes.Internal, "failed to query data from DB: %v", err)
	}
}
