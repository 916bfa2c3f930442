package core

import glog "github.com/goliatone/go-logger/glog"

var (
	_ Registry[struct{}] = (*HookRegistry[struct{}])(nil)
	_ Rummager[struct{}] = (*Service[struct{}])(nil)
	_ ConfigProvider     = (*CfgxConfigProvider)(nil)
	_ OptionsResolver    = GoOptionsResolver{}

	_ Logger         = glog.Nop()
	_ LoggerProvider = glog.ProviderFromLogger(glog.Nop())
)
