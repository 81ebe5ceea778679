package ros

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/vburojevic/rlc/internal/domain"
)

// parseNodeList parses `ros2 node list` output: one fully-qualified node
// name per line, e.g. "/talker". Leading slashes are trimmed so names match
// the graph's node-name convention.
func parseNodeList(out string) []string {
	var nodes []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "WARNING") {
			continue
		}
		nodes = append(nodes, strings.TrimPrefix(line, "/"))
	}
	return nodes
}

// parseServiceList parses `ros2 service list -t` output, e.g.
// "/talker/set_logger_level [rcl_interfaces/srv/SetLoggerLevel]".
func parseServiceList(out string) []domain.ServiceInfo {
	var services []domain.ServiceInfo
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		name, rest, found := strings.Cut(line, " ")
		if !found {
			services = append(services, domain.ServiceInfo{Name: name})
			continue
		}
		rest = strings.Trim(strings.TrimSpace(rest), "[]")
		var types []string
		for _, t := range strings.Split(rest, ",") {
			t = strings.TrimSpace(t)
			if t != "" {
				types = append(types, normalizeType(t))
			}
		}
		services = append(services, domain.ServiceInfo{Name: name, Types: types})
	}
	return services
}

// normalizeType collapses the CLI's package/srv/Type form to the two-part
// package/Type form used throughout the graph queries.
func normalizeType(t string) string {
	return strings.Replace(t, "/srv/", "/", 1)
}

// wireType expands a two-part service type to the package/srv/Type form the
// ros2 CLI expects.
func wireType(t string) string {
	parts := strings.SplitN(t, "/", 2)
	if len(parts) == 2 && !strings.Contains(parts[1], "/") {
		return parts[0] + "/srv/" + parts[1]
	}
	return t
}

var (
	successfulRe = regexp.MustCompile(`successful=(True|False)`)
	levelRe      = regexp.MustCompile(`\blevel=(\d+)`)
	loggerRe     = regexp.MustCompile(`name='([^']*)',\s*level=(\d+)`)
)

// parseResponse scrapes a `ros2 service call` reply for the fields the
// typed response needs. The CLI prints the response as a Python-style repr
// after a "response:" marker.
func parseResponse(serviceType, out string) (any, error) {
	idx := strings.Index(out, "response:")
	if idx < 0 {
		return nil, errNoResponse
	}
	body := out[idx:]

	switch serviceType {
	case domain.SetLoggerLevelType:
		m := successfulRe.FindStringSubmatch(body)
		return domain.SetLoggerLevelResponse{Success: m == nil || m[1] == "True"}, nil
	case domain.GetLoggerLevelType:
		m := levelRe.FindStringSubmatch(body)
		if m == nil {
			return nil, errNoResponse
		}
		code, err := strconv.ParseUint(m[1], 10, 32)
		if err != nil {
			return nil, err
		}
		return domain.GetLoggerLevelResponse{Level: uint32(code)}, nil
	case domain.GetLoggersType:
		var resp domain.GetLoggersResponse
		for _, m := range loggerRe.FindAllStringSubmatch(body, -1) {
			code, err := strconv.ParseUint(m[2], 10, 32)
			if err != nil {
				continue
			}
			resp.Loggers = append(resp.Loggers, domain.LoggerEntry{
				Name:  m[1],
				Level: uint32(code),
			})
		}
		return resp, nil
	}
	return nil, errNoResponse
}

// requestYAML renders a typed request as the inline YAML literal the ros2
// CLI takes on the command line.
func requestYAML(req any) string {
	switch r := req.(type) {
	case domain.SetLoggerLevelRequest:
		return "{name: '" + yamlEscape(r.Name) + "', level: " + strconv.FormatUint(uint64(r.Level), 10) + "}"
	case domain.GetLoggerLevelRequest:
		return "{name: '" + yamlEscape(r.Name) + "'}"
	case domain.GetLoggersRequest:
		return "{name: '" + yamlEscape(r.Name) + "'}"
	}
	return "{}"
}

func yamlEscape(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
