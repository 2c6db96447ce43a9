package dsprep

// Label definitions of the supported segmentation datasets. KITTI, GTA5 and CamVid annotate with the
// Cityscapes taxonomy.

import (
	"github.com/pkg/errors"
)

var datasetLabels = map[string][]Label{
	"cityscapes":    cityscapesLabels,
	"kitti":         cityscapesLabels,
	"gta5":          cityscapesLabels,
	"camvid":        cityscapesLabels,
	"virtual_kitti": virtualKITTILabels,
	"synthia":       synthiaLabels,
	"bdd100k":       bdd100kLabels,
	"lostandfound":  lostAndFoundLabels,
	"mapillary":     mapillaryLabels,
}

// DatasetLabels returns the label table of the named dataset.
func DatasetLabels(dataset string) (*LabelTable, error) {
	labels, ok := datasetLabels[dataset]
	if !ok {
		return nil, errors.Wrapf(ErrConfig, "no label definitions for dataset %q", dataset)
	}
	return NewLabelTable(dataset, labels)
}

var cityscapesLabels = []Label{
	{"unlabeled", 0, 255, "void", 0, false, true, RGB{0, 0, 0}},
	{"ego vehicle", 1, 255, "void", 0, false, true, RGB{0, 0, 0}},
	{"rectification border", 2, 255, "void", 0, false, true, RGB{0, 0, 0}},
	{"out of roi", 3, 255, "void", 0, false, true, RGB{0, 0, 0}},
	{"static", 4, 255, "void", 0, false, true, RGB{0, 0, 0}},
	{"dynamic", 5, 255, "void", 0, false, true, RGB{111, 74, 0}},
	{"ground", 6, 255, "void", 0, false, true, RGB{81, 0, 81}},
	{"road", 7, 0, "flat", 1, false, false, RGB{128, 64, 128}},
	{"sidewalk", 8, 1, "flat", 1, false, false, RGB{244, 35, 232}},
	{"parking", 9, 255, "flat", 1, false, true, RGB{250, 170, 160}},
	{"rail track", 10, 255, "flat", 1, false, true, RGB{230, 150, 140}},
	{"building", 11, 2, "construction", 2, false, false, RGB{70, 70, 70}},
	{"wall", 12, 3, "construction", 2, false, false, RGB{102, 102, 156}},
	{"fence", 13, 4, "construction", 2, false, false, RGB{190, 153, 153}},
	{"guard rail", 14, 255, "construction", 2, false, true, RGB{180, 165, 180}},
	{"bridge", 15, 255, "construction", 2, false, true, RGB{150, 100, 100}},
	{"tunnel", 16, 255, "construction", 2, false, true, RGB{150, 120, 90}},
	{"pole", 17, 5, "object", 3, false, false, RGB{153, 153, 153}},
	{"polegroup", 18, 255, "object", 3, false, true, RGB{153, 153, 153}},
	{"traffic light", 19, 6, "object", 3, false, false, RGB{250, 170, 30}},
	{"traffic sign", 20, 7, "object", 3, false, false, RGB{220, 220, 0}},
	{"vegetation", 21, 8, "nature", 4, false, false, RGB{107, 142, 35}},
	{"terrain", 22, 9, "nature", 4, false, false, RGB{152, 251, 152}},
	{"sky", 23, 10, "sky", 5, false, false, RGB{70, 130, 180}},
	{"person", 24, 11, "human", 6, true, false, RGB{220, 20, 60}},
	{"rider", 25, 12, "human", 6, true, false, RGB{255, 0, 0}},
	{"car", 26, 13, "vehicle", 7, true, false, RGB{0, 0, 142}},
	{"truck", 27, 14, "vehicle", 7, true, false, RGB{0, 0, 70}},
	{"bus", 28, 15, "vehicle", 7, true, false, RGB{0, 60, 100}},
	{"caravan", 29, 255, "vehicle", 7, true, true, RGB{0, 0, 90}},
	{"trailer", 30, 255, "vehicle", 7, true, true, RGB{0, 0, 110}},
	{"train", 31, 16, "vehicle", 7, true, false, RGB{0, 80, 100}},
	{"motorcycle", 32, 17, "vehicle", 7, true, false, RGB{0, 0, 230}},
	{"bicycle", 33, 18, "vehicle", 7, true, false, RGB{119, 11, 32}},
	{"license plate", -1, 255, "vehicle", 7, false, true, RGB{0, 0, 142}},
}

var virtualKITTILabels = []Label{
	{"building", 0, 2, "void", 0, false, true, RGB{140, 140, 140}},
	{"car", 0, 13, "void", 0, false, true, RGB{200, 200, 200}},
	{"car", 0, 13, "void", 0, false, true, RGB{200, 205, 220}},
	{"car", 0, 13, "void", 0, false, true, RGB{200, 210, 238}},
	{"car", 0, 13, "void", 0, false, true, RGB{200, 240, 200}},
	{"car", 0, 13, "void", 0, false, true, RGB{201, 209, 240}},
	{"car", 0, 13, "void", 0, false, true, RGB{201, 236, 234}},
	{"car", 0, 13, "void", 0, false, true, RGB{202, 218, 241}},
	{"car", 0, 13, "void", 0, false, true, RGB{202, 228, 242}},
	{"car", 0, 13, "void", 0, false, true, RGB{203, 219, 201}},
	{"car", 0, 13, "void", 0, false, true, RGB{203, 224, 202}},
	{"car", 0, 13, "void", 0, false, true, RGB{203, 227, 244}},
	{"car", 0, 13, "void", 0, false, true, RGB{204, 215, 235}},
	{"car", 0, 13, "void", 0, false, true, RGB{204, 216, 236}},
	{"car", 0, 13, "void", 0, false, true, RGB{204, 229, 222}},
	{"car", 0, 13, "void", 0, false, true, RGB{204, 234, 242}},
	{"car", 0, 13, "void", 0, false, true, RGB{206, 206, 244}},
	{"car", 0, 13, "void", 0, false, true, RGB{206, 224, 239}},
	{"car", 0, 13, "void", 0, false, true, RGB{206, 244, 234}},
	{"car", 0, 13, "void", 0, false, true, RGB{207, 203, 224}},
	{"car", 0, 13, "void", 0, false, true, RGB{207, 213, 232}},
	{"car", 0, 13, "void", 0, false, true, RGB{207, 248, 202}},
	{"car", 0, 13, "void", 0, false, true, RGB{207, 249, 204}},
	{"car", 0, 13, "void", 0, false, true, RGB{208, 244, 236}},
	{"car", 0, 13, "void", 0, false, true, RGB{209, 214, 215}},
	{"car", 0, 13, "void", 0, false, true, RGB{209, 221, 235}},
	{"car", 0, 13, "void", 0, false, true, RGB{209, 235, 245}},
	{"car", 0, 13, "void", 0, false, true, RGB{210, 210, 227}},
	{"car", 0, 13, "void", 0, false, true, RGB{210, 218, 236}},
	{"car", 0, 13, "void", 0, false, true, RGB{210, 223, 206}},
	{"car", 0, 13, "void", 0, false, true, RGB{210, 227, 203}},
	{"car", 0, 13, "void", 0, false, true, RGB{211, 223, 237}},
	{"car", 0, 13, "void", 0, false, true, RGB{212, 214, 246}},
	{"car", 0, 13, "void", 0, false, true, RGB{212, 234, 247}},
	{"car", 0, 13, "void", 0, false, true, RGB{212, 238, 217}},
	{"car", 0, 13, "void", 0, false, true, RGB{213, 243, 237}},
	{"car", 0, 13, "void", 0, false, true, RGB{214, 205, 205}},
	{"car", 0, 13, "void", 0, false, true, RGB{214, 210, 230}},
	{"car", 0, 13, "void", 0, false, true, RGB{214, 226, 233}},
	{"car", 0, 13, "void", 0, false, true, RGB{215, 202, 238}},
	{"car", 0, 13, "void", 0, false, true, RGB{215, 203, 229}},
	{"car", 0, 13, "void", 0, false, true, RGB{215, 208, 249}},
	{"car", 0, 13, "void", 0, false, true, RGB{215, 215, 225}},
	{"car", 0, 13, "void", 0, false, true, RGB{216, 213, 219}},
	{"car", 0, 13, "void", 0, false, true, RGB{216, 243, 247}},
	{"car", 0, 13, "void", 0, false, true, RGB{217, 223, 228}},
	{"car", 0, 13, "void", 0, false, true, RGB{217, 234, 206}},
	{"car", 0, 13, "void", 0, false, true, RGB{217, 239, 231}},
	{"car", 0, 13, "void", 0, false, true, RGB{218, 212, 221}},
	{"car", 0, 13, "void", 0, false, true, RGB{218, 228, 231}},
	{"car", 0, 13, "void", 0, false, true, RGB{218, 231, 239}},
	{"car", 0, 13, "void", 0, false, true, RGB{219, 222, 248}},
	{"car", 0, 13, "void", 0, false, true, RGB{219, 232, 201}},
	{"car", 0, 13, "void", 0, false, true, RGB{220, 220, 224}},
	{"car", 0, 13, "void", 0, false, true, RGB{221, 202, 233}},
	{"car", 0, 13, "void", 0, false, true, RGB{221, 209, 216}},
	{"car", 0, 13, "void", 0, false, true, RGB{221, 213, 207}},
	{"car", 0, 13, "void", 0, false, true, RGB{221, 218, 232}},
	{"car", 0, 13, "void", 0, false, true, RGB{221, 248, 212}},
	{"car", 0, 13, "void", 0, false, true, RGB{222, 207, 203}},
	{"car", 0, 13, "void", 0, false, true, RGB{222, 209, 241}},
	{"car", 0, 13, "void", 0, false, true, RGB{223, 201, 249}},
	{"car", 0, 13, "void", 0, false, true, RGB{223, 217, 219}},
	{"car", 0, 13, "void", 0, false, true, RGB{224, 217, 244}},
	{"car", 0, 13, "void", 0, false, true, RGB{224, 222, 214}},
	{"car", 0, 13, "void", 0, false, true, RGB{224, 247, 233}},
	{"car", 0, 13, "void", 0, false, true, RGB{225, 225, 222}},
	{"car", 0, 13, "void", 0, false, true, RGB{225, 227, 234}},
	{"car", 0, 13, "void", 0, false, true, RGB{225, 238, 242}},
	{"car", 0, 13, "void", 0, false, true, RGB{226, 214, 214}},
	{"car", 0, 13, "void", 0, false, true, RGB{226, 230, 200}},
	{"car", 0, 13, "void", 0, false, true, RGB{227, 237, 226}},
	{"car", 0, 13, "void", 0, false, true, RGB{227, 242, 246}},
	{"car", 0, 13, "void", 0, false, true, RGB{228, 222, 218}},
	{"car", 0, 13, "void", 0, false, true, RGB{228, 226, 234}},
	{"car", 0, 13, "void", 0, false, true, RGB{228, 246, 216}},
	{"car", 0, 13, "void", 0, false, true, RGB{229, 211, 210}},
	{"car", 0, 13, "void", 0, false, true, RGB{229, 217, 243}},
	{"car", 0, 13, "void", 0, false, true, RGB{230, 207, 208}},
	{"car", 0, 13, "void", 0, false, true, RGB{230, 208, 202}},
	{"car", 0, 13, "void", 0, false, true, RGB{230, 212, 228}},
	{"car", 0, 13, "void", 0, false, true, RGB{230, 216, 248}},
	{"car", 0, 13, "void", 0, false, true, RGB{230, 220, 213}},
	{"car", 0, 13, "void", 0, false, true, RGB{231, 205, 235}},
	{"car", 0, 13, "void", 0, false, true, RGB{231, 209, 205}},
	{"car", 0, 13, "void", 0, false, true, RGB{232, 227, 239}},
	{"car", 0, 13, "void", 0, false, true, RGB{232, 246, 244}},
	{"car", 0, 13, "void", 0, false, true, RGB{233, 217, 208}},
	{"car", 0, 13, "void", 0, false, true, RGB{233, 231, 210}},
	{"car", 0, 13, "void", 0, false, true, RGB{233, 236, 230}},
	{"car", 0, 13, "void", 0, false, true, RGB{233, 237, 203}},
	{"car", 0, 13, "void", 0, false, true, RGB{235, 233, 237}},
	{"car", 0, 13, "void", 0, false, true, RGB{236, 201, 241}},
	{"car", 0, 13, "void", 0, false, true, RGB{236, 206, 211}},
	{"car", 0, 13, "void", 0, false, true, RGB{236, 214, 203}},
	{"car", 0, 13, "void", 0, false, true, RGB{236, 225, 245}},
	{"car", 0, 13, "void", 0, false, true, RGB{237, 210, 232}},
	{"car", 0, 13, "void", 0, false, true, RGB{237, 216, 204}},
	{"car", 0, 13, "void", 0, false, true, RGB{237, 221, 229}},
	{"car", 0, 13, "void", 0, false, true, RGB{238, 212, 238}},
	{"car", 0, 13, "void", 0, false, true, RGB{239, 204, 246}},
	{"car", 0, 13, "void", 0, false, true, RGB{239, 211, 249}},
	{"car", 0, 13, "void", 0, false, true, RGB{239, 221, 223}},
	{"car", 0, 13, "void", 0, false, true, RGB{239, 225, 243}},
	{"car", 0, 13, "void", 0, false, true, RGB{239, 230, 213}},
	{"car", 0, 13, "void", 0, false, true, RGB{240, 200, 230}},
	{"car", 0, 13, "void", 0, false, true, RGB{240, 245, 205}},
	{"car", 0, 13, "void", 0, false, true, RGB{241, 219, 202}},
	{"car", 0, 13, "void", 0, false, true, RGB{241, 241, 205}},
	{"car", 0, 13, "void", 0, false, true, RGB{242, 200, 245}},
	{"car", 0, 13, "void", 0, false, true, RGB{242, 208, 244}},
	{"car", 0, 13, "void", 0, false, true, RGB{242, 241, 239}},
	{"car", 0, 13, "void", 0, false, true, RGB{242, 245, 225}},
	{"car", 0, 13, "void", 0, false, true, RGB{243, 227, 205}},
	{"car", 0, 13, "void", 0, false, true, RGB{243, 232, 248}},
	{"car", 0, 13, "void", 0, false, true, RGB{244, 210, 237}},
	{"car", 0, 13, "void", 0, false, true, RGB{244, 216, 247}},
	{"car", 0, 13, "void", 0, false, true, RGB{244, 224, 206}},
	{"car", 0, 13, "void", 0, false, true, RGB{244, 229, 231}},
	{"car", 0, 13, "void", 0, false, true, RGB{245, 215, 207}},
	{"car", 0, 13, "void", 0, false, true, RGB{245, 220, 227}},
	{"car", 0, 13, "void", 0, false, true, RGB{245, 220, 240}},
	{"car", 0, 13, "void", 0, false, true, RGB{246, 211, 249}},
	{"car", 0, 13, "void", 0, false, true, RGB{247, 208, 232}},
	{"car", 0, 13, "void", 0, false, true, RGB{247, 230, 218}},
	{"car", 0, 13, "void", 0, false, true, RGB{248, 235, 238}},
	{"car", 0, 13, "void", 0, false, true, RGB{248, 239, 209}},
	{"car", 0, 13, "void", 0, false, true, RGB{249, 221, 246}},
	{"car", 0, 13, "void", 0, false, true, RGB{249, 249, 241}},
	{"guardrail", 0, 255, "void", 0, false, true, RGB{255, 100, 255}},
	{"misc", 0, 255, "void", 0, false, true, RGB{80, 80, 80}},
	{"pole", 0, 5, "void", 0, false, true, RGB{255, 130, 0}},
	{"road", 0, 0, "void", 0, false, true, RGB{100, 60, 100}},
	{"sky", 0, 10, "void", 0, false, true, RGB{90, 200, 255}},
	{"terrain", 0, 9, "void", 0, false, true, RGB{210, 0, 200}},
	{"trafficlight", 0, 6, "void", 0, false, true, RGB{200, 200, 0}},
	{"trafficsign", 0, 7, "void", 0, false, true, RGB{255, 255, 0}},
	{"tree", 0, 8, "void", 0, false, true, RGB{0, 199, 0}},
	{"truck", 0, 14, "void", 0, false, true, RGB{160, 60, 60}},
	{"van", 0, 15, "void", 0, false, true, RGB{203, 224, 202}},
	{"van", 0, 15, "void", 0, false, true, RGB{206, 244, 234}},
	{"van", 0, 15, "void", 0, false, true, RGB{207, 248, 202}},
	{"van", 0, 15, "void", 0, false, true, RGB{210, 218, 236}},
	{"van", 0, 15, "void", 0, false, true, RGB{210, 227, 203}},
	{"van", 0, 15, "void", 0, false, true, RGB{212, 218, 230}},
	{"van", 0, 15, "void", 0, false, true, RGB{212, 234, 247}},
	{"van", 0, 15, "void", 0, false, true, RGB{216, 213, 219}},
	{"van", 0, 15, "void", 0, false, true, RGB{219, 222, 248}},
	{"van", 0, 15, "void", 0, false, true, RGB{221, 248, 212}},
	{"van", 0, 15, "void", 0, false, true, RGB{224, 217, 244}},
	{"van", 0, 15, "void", 0, false, true, RGB{227, 237, 226}},
	{"van", 0, 15, "void", 0, false, true, RGB{229, 217, 243}},
	{"van", 0, 15, "void", 0, false, true, RGB{230, 208, 202}},
	{"van", 0, 15, "void", 0, false, true, RGB{231, 205, 235}},
	{"van", 0, 15, "void", 0, false, true, RGB{232, 246, 244}},
	{"van", 0, 15, "void", 0, false, true, RGB{235, 225, 211}},
	{"van", 0, 15, "void", 0, false, true, RGB{236, 201, 241}},
	{"van", 0, 15, "void", 0, false, true, RGB{246, 224, 200}},
	{"van", 0, 15, "void", 0, false, true, RGB{247, 213, 242}},
	{"van", 0, 15, "void", 0, false, true, RGB{248, 235, 238}},
	{"vegetation", 0, 8, "void", 0, false, true, RGB{90, 240, 0}},
}

var synthiaLabels = []Label{
	{"unlabeled", 0, 255, "void", 0, false, true, RGB{0, 0, 0}},
	{"road", 3, 0, "flat", 1, false, false, RGB{128, 64, 128}},
	{"road_work", 14, 0, "flat", 1, false, false, RGB{128, 64, 64}},
	{"sidewalk", 4, 1, "flat", 1, false, false, RGB{244, 35, 232}},
	{"parking", 13, 255, "flat", 1, false, true, RGB{250, 170, 160}},
	{"lane_marking", 22, 0, "flat", 1, false, false, RGB{102, 102, 156}},
	{"building", 2, 2, "construction", 2, false, false, RGB{70, 70, 70}},
	{"wall", 21, 3, "construction", 2, false, false, RGB{102, 102, 156}},
	{"fence", 5, 4, "construction", 2, false, false, RGB{190, 153, 153}},
	{"traffic light", 15, 6, "object", 3, false, false, RGB{250, 170, 30}},
	{"traffic sign", 9, 7, "object", 3, false, false, RGB{220, 220, 0}},
	{"pole", 7, 5, "object", 3, false, false, RGB{153, 153, 153}},
	{"vegetation", 6, 8, "nature", 4, false, false, RGB{107, 142, 35}},
	{"terrain", 16, 9, "nature", 4, false, false, RGB{152, 251, 152}},
	{"sky", 1, 10, "sky", 5, false, false, RGB{70, 130, 180}},
	{"person", 10, 11, "human", 6, true, false, RGB{220, 20, 60}},
	{"rider", 17, 12, "human", 6, true, false, RGB{255, 0, 0}},
	{"car", 8, 13, "vehicle", 7, true, false, RGB{0, 0, 142}},
	{"truck", 18, 14, "vehicle", 7, true, false, RGB{0, 0, 70}},
	{"bus", 19, 15, "vehicle", 7, true, false, RGB{0, 60, 100}},
	{"train", 20, 16, "vehicle", 7, true, false, RGB{0, 80, 100}},
	{"motorcycle", 12, 17, "vehicle", 7, true, false, RGB{0, 0, 230}},
	{"bicycle", 11, 18, "vehicle", 7, true, false, RGB{119, 11, 32}},
}

var bdd100kLabels = []Label{
	{"unlabeled", 0, 255, "void", 0, false, true, RGB{0, 0, 0}},
	{"dynamic", 1, 255, "void", 0, false, true, RGB{111, 74, 0}},
	{"ego vehicle", 2, 255, "void", 0, false, true, RGB{0, 0, 0}},
	{"ground", 3, 255, "void", 0, false, true, RGB{81, 0, 81}},
	{"static", 4, 255, "void", 0, false, true, RGB{0, 0, 0}},
	{"parking", 5, 255, "flat", 1, false, true, RGB{250, 170, 160}},
	{"rail track", 6, 255, "flat", 1, false, true, RGB{230, 150, 140}},
	{"road", 7, 0, "flat", 1, false, false, RGB{128, 64, 128}},
	{"sidewalk", 8, 1, "flat", 1, false, false, RGB{244, 35, 232}},
	{"bridge", 9, 255, "construction", 2, false, true, RGB{150, 100, 100}},
	{"building", 10, 2, "construction", 2, false, false, RGB{70, 70, 70}},
	{"fence", 11, 4, "construction", 2, false, false, RGB{190, 153, 153}},
	{"garage", 12, 255, "construction", 2, false, true, RGB{180, 100, 180}},
	{"guard rail", 13, 255, "construction", 2, false, true, RGB{180, 165, 180}},
	{"tunnel", 14, 255, "construction", 2, false, true, RGB{150, 120, 90}},
	{"wall", 15, 3, "construction", 2, false, false, RGB{102, 102, 156}},
	{"banner", 16, 255, "object", 3, false, true, RGB{250, 170, 100}},
	{"billboard", 17, 255, "object", 3, false, true, RGB{220, 220, 250}},
	{"lane divider", 18, 255, "object", 3, false, true, RGB{255, 165, 0}},
	{"parking sign", 19, 255, "object", 3, false, false, RGB{220, 20, 60}},
	{"pole", 20, 5, "object", 3, false, false, RGB{153, 153, 153}},
	{"polegroup", 21, 255, "object", 3, false, true, RGB{153, 153, 153}},
	{"street light", 22, 255, "object", 3, false, true, RGB{220, 220, 100}},
	{"traffic cone", 23, 255, "object", 3, false, true, RGB{255, 70, 0}},
	{"traffic device", 24, 255, "object", 3, false, true, RGB{220, 220, 220}},
	{"traffic light", 25, 6, "object", 3, false, false, RGB{250, 170, 30}},
	{"traffic sign", 26, 7, "object", 3, false, false, RGB{220, 220, 0}},
	{"traffic sign frame", 27, 255, "object", 3, false, true, RGB{250, 170, 250}},
	{"terrain", 28, 9, "nature", 4, false, false, RGB{152, 251, 152}},
	{"vegetation", 29, 8, "nature", 4, false, false, RGB{107, 142, 35}},
	{"sky", 30, 10, "sky", 5, false, false, RGB{70, 130, 180}},
	{"person", 31, 11, "human", 6, true, false, RGB{220, 20, 60}},
	{"rider", 32, 12, "human", 6, true, false, RGB{255, 0, 0}},
	{"bicycle", 33, 18, "vehicle", 7, true, false, RGB{119, 11, 32}},
	{"bus", 34, 15, "vehicle", 7, true, false, RGB{0, 60, 100}},
	{"car", 35, 13, "vehicle", 7, true, false, RGB{0, 0, 142}},
	{"caravan", 36, 255, "vehicle", 7, true, true, RGB{0, 0, 90}},
	{"motorcycle", 37, 17, "vehicle", 7, true, false, RGB{0, 0, 230}},
	{"trailer", 38, 255, "vehicle", 7, true, true, RGB{0, 0, 110}},
	{"train", 39, 16, "vehicle", 7, true, false, RGB{0, 80, 100}},
	{"truck", 40, 14, "vehicle", 7, true, false, RGB{0, 0, 70}},
}

var lostAndFoundLabels = []Label{
	{"unlabeled", 0, 0, "void", 0, false, true, RGB{0, 0, 0}},
	{"ego vehicle", 0, 0, "void", 0, false, true, RGB{0, 0, 0}},
	{"rectification border", 0, 0, "void", 0, false, true, RGB{0, 0, 0}},
	{"out of roi", 0, 0, "void", 0, false, true, RGB{0, 0, 0}},
	{"background", 0, 0, "void", 0, false, false, RGB{0, 0, 0}},
	{"free", 1, 1, "void", 0, false, false, RGB{128, 64, 128}},
	{"01", 2, 2, "void", 0, true, false, RGB{0, 0, 142}},
	{"02", 3, 2, "void", 0, true, false, RGB{0, 0, 142}},
	{"03", 4, 2, "void", 0, true, false, RGB{0, 0, 142}},
	{"04", 5, 2, "void", 0, true, false, RGB{0, 0, 142}},
	{"05", 6, 2, "void", 0, true, false, RGB{0, 0, 142}},
	{"06", 7, 2, "void", 0, true, false, RGB{0, 0, 142}},
	{"07", 8, 2, "void", 0, true, false, RGB{0, 0, 142}},
	{"08", 9, 2, "void", 0, true, false, RGB{0, 0, 142}},
	{"09", 10, 2, "void", 0, true, false, RGB{0, 0, 142}},
	{"10", 11, 2, "void", 0, true, false, RGB{0, 0, 142}},
	{"11", 12, 2, "void", 0, true, false, RGB{0, 0, 142}},
	{"12", 13, 2, "void", 0, true, false, RGB{0, 0, 142}},
	{"13", 14, 2, "void", 0, true, false, RGB{0, 0, 142}},
	{"14", 15, 2, "void", 0, true, false, RGB{0, 0, 142}},
	{"15", 16, 2, "void", 0, true, false, RGB{0, 0, 142}},
	{"16", 17, 2, "void", 0, true, false, RGB{0, 0, 142}},
	{"17", 18, 2, "void", 0, true, false, RGB{0, 0, 142}},
	{"18", 19, 2, "void", 0, true, false, RGB{0, 0, 142}},
	{"19", 20, 2, "void", 0, true, false, RGB{0, 0, 142}},
	{"20", 21, 2, "void", 0, true, false, RGB{0, 0, 142}},
	{"21", 22, 2, "void", 0, true, false, RGB{0, 0, 142}},
	{"22", 23, 2, "void", 0, true, false, RGB{0, 0, 142}},
	{"23", 24, 2, "void", 0, true, false, RGB{0, 0, 142}},
	{"24", 25, 2, "void", 0, true, false, RGB{0, 0, 142}},
	{"25", 26, 2, "void", 0, true, false, RGB{0, 0, 142}},
	{"26", 27, 2, "void", 0, true, false, RGB{0, 0, 142}},
	{"27", 28, 2, "void", 0, true, false, RGB{0, 0, 142}},
	{"28", 29, 2, "void", 0, true, false, RGB{0, 0, 142}},
	{"29", 30, 2, "void", 0, true, false, RGB{0, 0, 142}},
	{"30", 31, 0, "void", 0, true, false, RGB{0, 0, 0}},
	{"31", 32, 2, "void", 0, true, false, RGB{0, 0, 142}},
	{"32", 33, 0, "void", 0, true, false, RGB{0, 0, 0}},
	{"33", 34, 0, "void", 0, true, false, RGB{0, 0, 0}},
	{"34", 35, 2, "void", 0, true, false, RGB{0, 0, 142}},
	{"35", 36, 0, "void", 0, true, false, RGB{0, 0, 0}},
	{"36", 37, 0, "void", 0, true, false, RGB{0, 0, 0}},
	{"37", 38, 0, "void", 0, true, false, RGB{0, 0, 0}},
	{"38", 39, 0, "void", 0, true, false, RGB{0, 0, 0}},
	{"39", 40, 2, "void", 0, true, false, RGB{0, 0, 142}},
	{"40", 41, 2, "void", 0, true, false, RGB{0, 0, 142}},
	{"41", 42, 2, "void", 0, true, false, RGB{0, 0, 142}},
	{"42", 43, 2, "void", 0, true, false, RGB{0, 0, 142}},
}

var mapillaryLabels = []Label{
	{"car mount", 0, 255, "void", 0, false, true, RGB{32, 32, 32}},
	{"ego vehicle", 1, 255, "void", 0, false, true, RGB{120, 10, 10}},
	{"unlabeled", 2, 255, "void", 0, false, true, RGB{0, 0, 0}},
	{"barrier", 3, 255, "construction", 2, false, false, RGB{90, 120, 150}},
	{"bike lane", 4, 0, "construction", 2, false, false, RGB{244, 35, 232}},
	{"bridge", 5, 255, "construction", 2, false, false, RGB{150, 100, 100}},
	{"building", 6, 2, "construction", 2, false, false, RGB{70, 70, 70}},
	{"crosswalk - plain", 7, 0, "construction", 2, true, false, RGB{128, 64, 128}},
	{"curb", 8, 255, "construction", 2, false, false, RGB{244, 35, 232}},
	{"curb cut", 9, 255, "construction", 2, false, false, RGB{244, 35, 232}},
	{"fence", 10, 4, "construction", 2, false, false, RGB{190, 153, 153}},
	{"guard rail", 11, 255, "construction", 2, false, false, RGB{180, 165, 180}},
	{"parking", 12, 255, "construction", 2, false, false, RGB{250, 170, 160}},
	{"pedestrian area", 13, 255, "construction", 2, false, false, RGB{96, 96, 96}},
	{"rail track", 14, 255, "construction", 2, false, false, RGB{230, 150, 140}},
	{"road", 15, 0, "construction", 2, false, false, RGB{128, 64, 128}},
	{"service lane", 16, 255, "construction", 2, false, false, RGB{128, 64, 128}},
	{"sidewalk", 17, 1, "construction", 2, false, false, RGB{244, 35, 232}},
	{"tunnel", 18, 255, "construction", 2, false, false, RGB{150, 120, 90}},
	{"wall", 19, 3, "construction", 2, false, false, RGB{102, 102, 156}},
	{"banner", 20, 255, "object", 3, true, false, RGB{255, 255, 128}},
	{"bench", 21, 255, "object", 3, true, false, RGB{250, 0, 30}},
	{"bicycle", 22, 18, "object", 3, true, false, RGB{119, 11, 32}},
	{"bike rack", 23, 255, "object", 3, true, false, RGB{100, 140, 180}},
	{"billboard", 24, 255, "object", 3, true, false, RGB{220, 220, 220}},
	{"boat", 25, 255, "object", 3, true, false, RGB{150, 0, 255}},
	{"bus", 26, 15, "object", 3, true, false, RGB{0, 60, 100}},
	{"cctv camera", 27, 255, "object", 3, true, false, RGB{222, 40, 40}},
	{"car", 28, 13, "object", 3, true, false, RGB{0, 0, 142}},
	{"caravan", 29, 255, "object", 3, true, false, RGB{0, 0, 90}},
	{"catch basin", 30, 255, "object", 3, true, false, RGB{220, 128, 128}},
	{"fire hydrant", 31, 255, "object", 3, true, false, RGB{100, 170, 30}},
	{"junction box", 32, 255, "object", 3, true, false, RGB{40, 40, 40}},
	{"mailbox", 33, 255, "object", 3, true, false, RGB{33, 33, 33}},
	{"manhole", 34, 255, "object", 3, true, false, RGB{128, 64, 128}},
	{"motorcycle", 35, 17, "object", 3, true, false, RGB{0, 0, 230}},
	{"on rails", 36, 16, "object", 3, false, false, RGB{0, 80, 100}},
	{"other vehicle", 37, 255, "object", 3, true, false, RGB{128, 64, 64}},
	{"phone booth", 38, 255, "object", 3, true, false, RGB{142, 0, 0}},
	{"pole", 39, 5, "object", 3, true, false, RGB{153, 153, 153}},
	{"pothole", 40, 255, "object", 3, false, false, RGB{128, 64, 128}},
	{"street light", 41, 255, "object", 3, true, false, RGB{210, 170, 100}},
	{"traffic light", 42, 6, "object", 3, true, false, RGB{250, 170, 30}},
	{"traffic sign (back)", 43, 255, "object", 3, true, false, RGB{192, 192, 192}},
	{"traffic sign (front)", 44, 7, "object", 3, true, false, RGB{220, 220, 0}},
	{"traffic sign frame", 45, 255, "object", 3, true, false, RGB{128, 128, 128}},
	{"trailer", 46, 255, "object", 3, true, false, RGB{0, 0, 110}},
	{"trash can", 47, 255, "object", 3, true, false, RGB{140, 140, 20}},
	{"truck", 48, 14, "object", 3, true, false, RGB{0, 0, 70}},
	{"utility pole", 49, 255, "object", 3, true, false, RGB{0, 0, 80}},
	{"wheeled slow", 50, 255, "object", 3, true, false, RGB{0, 0, 192}},
	{"mountain", 51, 255, "nature", 4, false, false, RGB{64, 170, 64}},
	{"sand", 52, 255, "nature", 4, false, false, RGB{230, 160, 50}},
	{"sky", 53, 10, "nature", 4, false, false, RGB{70, 130, 180}},
	{"snow", 54, 255, "nature", 4, false, false, RGB{190, 255, 255}},
	{"terrain", 55, 9, "nature", 4, false, false, RGB{152, 251, 152}},
	{"vegetation", 56, 8, "nature", 4, false, false, RGB{107, 142, 35}},
	{"water", 57, 255, "nature", 4, false, false, RGB{0, 170, 30}},
	{"bicyclist", 58, 12, "human", 6, true, false, RGB{255, 0, 0}},
	{"motorcyclist", 59, 12, "human", 6, true, false, RGB{255, 0, 0}},
	{"other rider", 60, 12, "human", 6, true, false, RGB{255, 0, 0}},
	{"person", 61, 11, "human", 6, true, false, RGB{220, 20, 60}},
	{"lane marking - crosswalk", 62, 0, "marking", 8, true, false, RGB{128, 64, 128}},
	{"lane marking - general", 63, 0, "marking", 8, false, false, RGB{128, 64, 128}},
	{"bird", 64, 255, "animal", 9, true, false, RGB{165, 42, 42}},
	{"ground animal", 65, 255, "animal", 9, true, false, RGB{0, 192, 0}},
}
