package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"termfolio/internal/features"
)

// overrideList 收集重复出现的 -c key=value。
type overrideList []string

func (o *overrideList) String() string {
	return strings.Join(*o, ",")
}

func (o *overrideList) Set(v string) error {
	key, _, ok := strings.Cut(v, "=")
	if !ok || strings.TrimSpace(key) == "" {
		return fmt.Errorf("override %q is not key=value", v)
	}
	*o = append(*o, v)
	return nil
}

// featureList 接受重复或逗号分隔的 feature 名，写入时即校验。
type featureList struct {
	keys []string
}

func (f *featureList) String() string {
	return strings.Join(f.keys, ",")
}

func (f *featureList) Set(v string) error {
	for _, key := range strings.Split(v, ",") {
		key = strings.ToLower(strings.TrimSpace(key))
		if key == "" {
			continue
		}
		if !features.IsKnown(key) {
			return fmt.Errorf("unknown feature flag: %s", key)
		}
		f.keys = append(f.keys, key)
	}
	return nil
}

// rootArgs 是子命令之前的全局参数，解析结果统一转成配置覆盖项。
type rootArgs struct {
	overrides []string
}

// with 返回全局覆盖项在前、子命令覆盖项在后的合并结果，后者优先。
func (r rootArgs) with(extra []string) []string {
	merged := make([]string, 0, len(r.overrides)+len(extra))
	merged = append(merged, r.overrides...)
	return append(merged, extra...)
}

// parseRootArgs 在第一个非 flag 参数处停止，剩余参数原样交给子命令。
func parseRootArgs(args []string) (rootArgs, []string, error) {
	fs := flag.NewFlagSet("termfolio", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var overrides overrideList
	var enable, disable featureList
	fs.Var(&overrides, "c", "Override config value key=value (repeatable)")
	fs.Var(&enable, "enable", "Enable features, comma separated or repeated")
	fs.Var(&disable, "disable", "Disable features, comma separated or repeated")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return rootArgs{}, nil, errors.New("usage: termfolio [-c key=value] [--enable f] [--disable f] [serve|print|init-config|features|ping|completion] ...")
		}
		return rootArgs{}, nil, err
	}

	all := []string(overrides)
	all = append(all, featureOverrides(enable.keys, true)...)
	all = append(all, featureOverrides(disable.keys, false)...)
	return rootArgs{overrides: all}, fs.Args(), nil
}

func featureOverrides(keys []string, on bool) []string {
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		out = append(out, fmt.Sprintf("features.%s=%t", key, on))
	}
	return out
}
