package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/emicklei/proto"
)

var (
	errOpeningProtoFile   = errors.New("error opening the proto file")
	errFailedToParseProto = errors.New("failed to parse proto file")
)

type rpcMethod struct {
	Name            string
	Request         string
	Response        string
	StreamsRequest  bool
	StreamsResponse bool
}

type protoService struct {
	Name    string
	Methods []rpcMethod
}

func parseProtoFile(protoPath string) (*proto.Proto, error) {
	file, err := os.Open(protoPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errOpeningProtoFile, err)
	}
	defer file.Close()

	definition, err := proto.NewParser(file).Parse()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errFailedToParseProto, err)
	}

	return definition, nil
}

// getServices returns the services of definition qualified by the proto package.
func getServices(definition *proto.Proto) []protoService {
	var (
		pkg      string
		services []protoService
	)

	proto.Walk(definition,
		proto.WithPackage(func(p *proto.Package) { pkg = p.Name }),
		proto.WithService(func(s *proto.Service) {
			service := protoService{Name: s.Name}

			for _, element := range s.Elements {
				if rpc, ok := element.(*proto.RPC); ok {
					service.Methods = append(service.Methods, rpcMethod{
						Name:            rpc.Name,
						Request:         rpc.RequestType,
						Response:        rpc.ReturnsType,
						StreamsRequest:  rpc.StreamsRequest,
						StreamsResponse: rpc.StreamsReturns,
					})
				}
			}

			services = append(services, service)
		}),
	)

	if pkg != "" {
		for i := range services {
			services[i].Name = pkg + "." + services[i].Name
		}
	}

	return services
}

func describe(w io.Writer, protoPath string) error {
	definition, err := parseProtoFile(protoPath)
	if err != nil {
		return err
	}

	for _, s := range getServices(definition) {
		fmt.Fprintf(w, "service %s\n", s.Name)

		for _, m := range s.Methods {
			fmt.Fprintf(w, "  rpc %s(%s%s) returns (%s%s)\n",
				m.Name, streamPrefix(m.StreamsRequest), m.Request, streamPrefix(m.StreamsResponse), m.Response)
		}
	}

	return nil
}

func streamPrefix(streams bool) string {
	if streams {
		return "stream "
	}

	return ""
}
