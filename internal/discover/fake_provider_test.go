package discover

import "context"

// fakeProvider is a hand-rolled ConfigProvider test double for the
// end-to-end scenarios in §8: it models "every file has a config unless
// listed in noConfig" and "every directory is ignored if listed in
// ignoredDirs", which is enough to reproduce the spec's worked examples
// without needing a real configuration-file format.
type fakeProvider struct {
	ignoredDirs map[string]bool
	noConfig    map[string]bool
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{ignoredDirs: map[string]bool{}, noConfig: map[string]bool{}}
}

func (f *fakeProvider) LoadConfigForDirectory(context.Context, string) error { return nil }
func (f *fakeProvider) LoadConfigForFile(context.Context, string) error      { return nil }

func (f *fakeProvider) IsDirectoryIgnored(_ context.Context, absPath string) (bool, error) {
	return f.ignoredDirs[absPath], nil
}

func (f *fakeProvider) GetConfig(_ context.Context, absPath string) (interface{}, bool, error) {
	if f.noConfig[absPath] {
		return nil, false, nil
	}
	return struct{}{}, true, nil
}
